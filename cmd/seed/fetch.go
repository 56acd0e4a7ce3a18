package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/bookzone/inventory-go/internal/storage"
)

func fetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "endpoint",
			Usage:    "S3-compatible storage endpoint",
			Required: true,
			EnvVars:  []string{"STORAGE_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:     "access-key",
			Usage:    "Storage access key",
			Required: true,
			EnvVars:  []string{"STORAGE_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:     "secret-key",
			Usage:    "Storage secret key",
			Required: true,
			EnvVars:  []string{"STORAGE_SECRET_KEY"},
		},
		&cli.StringFlag{
			Name:     "bucket",
			Usage:    "Storage bucket holding seed archives",
			Required: true,
			EnvVars:  []string{"STORAGE_BUCKET"},
		},
		&cli.StringFlag{
			Name:    "region",
			Usage:   "Storage region",
			EnvVars: []string{"STORAGE_REGION"},
		},
		&cli.BoolFlag{
			Name:    "ssl",
			Usage:   "Use TLS when talking to storage",
			Value:   true,
			EnvVars: []string{"STORAGE_USE_SSL"},
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "Object key prefix to download",
			Value: "seeds/",
		},
		&cli.StringFlag{
			Name:    "dest",
			Usage:   "Local directory for downloaded files",
			Value:   "./data/seeds",
			EnvVars: []string{"SEED_DATA_DIR"},
		},
	}
}

// runFetcher downloads every object under the prefix into the local seed
// directory, preserving relative keys.
func runFetcher(c *cli.Context) error {
	client, err := storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  c.String("endpoint"),
		AccessKey: c.String("access-key"),
		SecretKey: c.String("secret-key"),
		Bucket:    c.String("bucket"),
		Region:    c.String("region"),
		UseSSL:    c.Bool("ssl"),
	})
	if err != nil {
		return err
	}

	prefix := c.String("prefix")
	objects, err := client.ListObjects(c.Context, prefix)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		return fmt.Errorf("no objects found under prefix %q", prefix)
	}

	dest := c.String("dest")
	for _, obj := range objects {
		destPath := filepath.Join(dest, filepath.FromSlash(obj.Key))
		if err := client.DownloadObject(c.Context, obj.Key, destPath); err != nil {
			return err
		}
		log.Printf("Downloaded %s (%d bytes) to %s", obj.Key, obj.Size, destPath)
	}

	log.Printf("Fetched %d objects from bucket %s", len(objects), c.String("bucket"))
	return nil
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/bookzone/inventory-go/internal/repository/postgres"
)

type contextKey string

const dbKey contextKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func initDB(c *cli.Context) error {
	db, err := postgres.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Store the database connection in the context
	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFromContext(c *cli.Context) (*postgres.DB, error) {
	db, ok := c.Context.Value(dbKey).(*postgres.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database connection not initialized")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Load catalog and sales history data into the database",
		Commands: []*cli.Command{
			{
				Name:  "books",
				Usage: "Seed the book catalog from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "file",
						Usage:   "Path to the books CSV file",
						Value:   "./data/seeds/books.csv",
						EnvVars: []string{"SEED_BOOKS_FILE"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runBookSeeder,
			},
			{
				Name:  "sales",
				Usage: "Seed historical order items from a CSV file",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:    "file",
						Usage:   "Path to the order items CSV file",
						Value:   "./data/seeds/order_items.csv",
						EnvVars: []string{"SEED_SALES_FILE"},
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runSalesSeeder,
			},
			{
				Name:   "fetch",
				Usage:  "Download seed CSV archives from object storage",
				Flags:  fetchFlags(),
				Action: runFetcher,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

// runBookSeeder loads the book catalog CSV. Expected columns:
// id, title, author, price, quantity, seller_id, is_active
func runBookSeeder(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	path := c.String("file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open books file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	const insert = `
		INSERT INTO books (id, title, author, price, quantity, seller_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			price = EXCLUDED.price,
			quantity = EXCLUDED.quantity,
			seller_id = EXCLUDED.seller_id,
			is_active = EXCLUDED.is_active
	`

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read record from %s: %w", path, err)
		}
		if len(record) < 7 {
			log.Printf("skipping short record: %v", record)
			continue
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if err != nil {
			log.Printf("skipping record with bad price %q: %v", record[3], err)
			continue
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(record[4]))
		if err != nil {
			log.Printf("skipping record with bad quantity %q: %v", record[4], err)
			continue
		}

		isActive, err := strconv.ParseBool(strings.TrimSpace(record[6]))
		if err != nil {
			log.Printf("skipping record with bad is_active %q: %v", record[6], err)
			continue
		}

		if _, err := db.ExecContext(c.Context, insert,
			strings.TrimSpace(record[0]),
			record[1],
			record[2],
			price,
			quantity,
			strings.TrimSpace(record[5]),
			isActive,
		); err != nil {
			return fmt.Errorf("failed to insert book %s: %w", record[0], err)
		}
		count++
	}

	log.Printf("Seeded %d books from %s", count, path)
	return nil
}

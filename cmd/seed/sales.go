package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v2"
)

// runSalesSeeder loads historical order items. Expected columns:
// id, order_id, book_id, quantity, created_at (RFC 3339)
func runSalesSeeder(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	path := c.String("file")
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open sales file %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	const insertOrder = `
		INSERT INTO orders (id, created_at)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	const insertItem = `
		INSERT INTO order_items (id, order_id, book_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
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
		if len(record) < 5 {
			log.Printf("skipping short record: %v", record)
			continue
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil {
			log.Printf("skipping record with bad quantity %q: %v", record[3], err)
			continue
		}

		createdAt, err := time.Parse(time.RFC3339, strings.TrimSpace(record[4]))
		if err != nil {
			log.Printf("skipping record with bad created_at %q: %v", record[4], err)
			continue
		}

		orderID := strings.TrimSpace(record[1])
		itemID := strings.TrimSpace(record[0])

		// An order and its item land together or not at all; a partial
		// insert would skew the daily sales aggregates.
		err = db.WithTx(c.Context, func(tx *sqlx.Tx) error {
			if _, err := tx.ExecContext(c.Context, insertOrder, orderID, createdAt); err != nil {
				return fmt.Errorf("failed to insert order %s: %w", orderID, err)
			}

			if _, err := tx.ExecContext(c.Context, insertItem,
				itemID,
				orderID,
				strings.TrimSpace(record[2]),
				quantity,
				createdAt,
			); err != nil {
				return fmt.Errorf("failed to insert order item %s: %w", itemID, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		count++
	}

	log.Printf("Seeded %d order items from %s", count, path)
	return nil
}

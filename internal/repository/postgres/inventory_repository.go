package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookzone/inventory-go/internal/domain"
	"github.com/bookzone/inventory-go/internal/repository"
)

type inventoryRepository struct {
	db *DB
}

// NewInventoryRepository builds the Postgres-backed read model for the
// analytics engine. All queries aggregate over the marketplace's order
// history; nothing here writes.
func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) DailySales(ctx context.Context, bookID string, windowDays int) ([]domain.DailySale, error) {
	query := `
        SELECT
            DATE(oi.created_at) as sale_date,
            SUM(oi.quantity)::float8 as daily_sales
        FROM order_items oi
        JOIN orders o ON oi.order_id = o.id
        WHERE oi.book_id = $1
        AND oi.created_at >= NOW() - make_interval(days => $2)
        GROUP BY DATE(oi.created_at)
        ORDER BY sale_date
    `

	var sales []domain.DailySale
	if err := r.db.SelectContext(ctx, &sales, query, bookID, windowDays); err != nil {
		return nil, fmt.Errorf("error getting daily sales for book %s: %w", bookID, err)
	}

	return sales, nil
}

func (r *inventoryRepository) OrderQuantities(ctx context.Context, bookID string, windowDays int) ([]float64, error) {
	query := `
        SELECT oi.quantity::float8
        FROM order_items oi
        JOIN orders o ON oi.order_id = o.id
        WHERE oi.book_id = $1
        AND oi.created_at >= NOW() - make_interval(days => $2)
    `

	var quantities []float64
	if err := r.db.SelectContext(ctx, &quantities, query, bookID, windowDays); err != nil {
		return nil, fmt.Errorf("error getting order quantities for book %s: %w", bookID, err)
	}

	return quantities, nil
}

func (r *inventoryRepository) GetBook(ctx context.Context, bookID string) (*domain.BookSnapshot, error) {
	query := `
        SELECT
            b.id,
            b.title,
            b.author,
            CAST(b.price AS FLOAT) as price,
            b.quantity,
            b.seller_id,
            b.is_active,
            (SELECT COUNT(*) FROM order_items oi
             WHERE oi.book_id = b.id
             AND oi.created_at >= NOW() - INTERVAL '30 days') as monthly_sales,
            (SELECT COUNT(*) FROM order_items oi
             WHERE oi.book_id = b.id
             AND oi.created_at >= NOW() - INTERVAL '90 days') as quarterly_sales
        FROM books b
        WHERE b.id = $1
    `

	var book domain.BookSnapshot
	err := r.db.GetContext(ctx, &book, query, bookID)
	if errors.Is(err, sql.ErrNoRows) {
		// Absent result, not an error: callers check for nil.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error getting book %s: %w", bookID, err)
	}

	return &book, nil
}

func (r *inventoryRepository) SellerBooks(ctx context.Context, sellerID string) ([]domain.BookSnapshot, error) {
	query := `
        SELECT
            b.id,
            b.title,
            b.author,
            CAST(b.price AS FLOAT) as price,
            b.quantity,
            b.seller_id,
            b.is_active,
            (SELECT COUNT(*) FROM order_items oi
             WHERE oi.book_id = b.id
             AND oi.created_at >= NOW() - INTERVAL '30 days') as monthly_sales,
            (SELECT COUNT(*) FROM order_items oi
             WHERE oi.book_id = b.id
             AND oi.created_at >= NOW() - INTERVAL '90 days') as quarterly_sales
        FROM books b
        WHERE b.seller_id = $1 AND b.is_active = true
        ORDER BY (b.price * b.quantity) DESC
    `

	var books []domain.BookSnapshot
	if err := r.db.SelectContext(ctx, &books, query, sellerID); err != nil {
		return nil, fmt.Errorf("error getting books for seller %s: %w", sellerID, err)
	}

	return books, nil
}

func (r *inventoryRepository) CatalogDailyDemand(ctx context.Context, windowDays int) (float64, error) {
	query := `
        SELECT COALESCE(AVG(daily_sales), 0)::float8 as avg_daily_demand
        FROM (
            SELECT DATE(oi.created_at) as sale_date, SUM(oi.quantity) as daily_sales
            FROM order_items oi
            JOIN orders o ON oi.order_id = o.id
            WHERE oi.created_at >= NOW() - make_interval(days => $1)
            GROUP BY DATE(oi.created_at)
        ) as daily_data
    `

	var avg float64
	if err := r.db.GetContext(ctx, &avg, query, windowDays); err != nil {
		return 0, fmt.Errorf("error getting catalog daily demand: %w", err)
	}

	return avg, nil
}

func (r *inventoryRepository) TopSold(ctx context.Context, limit int) ([]domain.TopSoldBook, error) {
	if limit <= 0 {
		limit = 8
	}

	query := `
        SELECT
            b.id,
            b.title,
            b.author,
            CAST(b.price AS FLOAT) as price,
            b.quantity,
            (SELECT COUNT(*) FROM order_items oi WHERE oi.book_id = b.id) as order_count
        FROM books b
        WHERE b.is_active = true
        ORDER BY order_count DESC, b.created_at DESC
        LIMIT $1
    `

	var books []domain.TopSoldBook
	if err := r.db.SelectContext(ctx, &books, query, limit); err != nil {
		return nil, fmt.Errorf("error getting top sold books: %w", err)
	}

	return books, nil
}

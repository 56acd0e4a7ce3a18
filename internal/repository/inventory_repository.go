// internal/repository/inventory_repository.go
package repository

import (
	"context"

	"github.com/bookzone/inventory-go/internal/domain"
)

// InventoryRepository is the read-only data boundary of the analytics engine:
// historical sale aggregates on one side, point-in-time book attributes with
// recent sale counts on the other. Implementations must surface storage
// errors unchanged; the engine never retries.
type InventoryRepository interface {
	// DailySales returns per-day aggregated sale quantities for one book
	// over a trailing window, oldest day first.
	DailySales(ctx context.Context, bookID string, windowDays int) ([]domain.DailySale, error)

	// OrderQuantities returns the raw per-order quantities sold for one
	// book over a trailing window.
	OrderQuantities(ctx context.Context, bookID string, windowDays int) ([]float64, error)

	// GetBook returns a snapshot of one book with its 30- and 90-day sale
	// counts. It returns (nil, nil) when the book does not exist.
	GetBook(ctx context.Context, bookID string) (*domain.BookSnapshot, error)

	// SellerBooks returns snapshots of all active books for a seller.
	SellerBooks(ctx context.Context, sellerID string) ([]domain.BookSnapshot, error)

	// CatalogDailyDemand returns the average daily quantity sold across the
	// whole catalog over a trailing window, or 0 when no sales exist.
	CatalogDailyDemand(ctx context.Context, windowDays int) (float64, error)

	// TopSold returns the best-selling active books by lifetime order count.
	TopSold(ctx context.Context, limit int) ([]domain.TopSoldBook, error)
}

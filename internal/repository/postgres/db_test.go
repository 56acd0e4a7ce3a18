package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/semaphore"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	return &DB{
		DB:  sqlx.NewDb(raw, "sqlmock"),
		sem: semaphore.NewWeighted(1),
	}, mock
}

func TestWithTxCommits(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs("o1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs("i1", "o1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(context.Background(), "INSERT INTO orders (id) VALUES ($1)", "o1"); err != nil {
			return err
		}
		_, err := tx.ExecContext(context.Background(), "INSERT INTO order_items (id, order_id) VALUES ($1, $2)", "i1", "o1")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("bad row")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := db.WithTx(context.Background(), func(tx *sqlx.Tx) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxReleasesSemaphore(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(tx *sqlx.Tx) error { return nil })
	require.NoError(t, err)

	// The weight-1 semaphore must be free again after the transaction.
	assert.True(t, db.sem.TryAcquire(1))
	db.sem.Release(1)
}

func TestQueriesFailFastOnCancelledContext(t *testing.T) {
	db, mock := newMockDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dest []string
	assert.Error(t, db.SelectContext(ctx, &dest, "SELECT id FROM books"))

	var one string
	assert.Error(t, db.GetContext(ctx, &one, "SELECT id FROM books LIMIT 1"))

	// No query may reach the database once the caller has given up.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetContextRunsBoundedQuery(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"avg_daily_demand"}).AddRow(2.5)
	mock.ExpectQuery("SELECT COALESCE").WillReturnRows(rows)

	var avg float64
	err := db.GetContext(context.Background(), &avg, "SELECT COALESCE(AVG(daily_sales), 0) FROM daily_data")
	require.NoError(t, err)
	assert.Equal(t, 2.5, avg)

	assert.True(t, db.sem.TryAcquire(1))
	db.sem.Release(1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

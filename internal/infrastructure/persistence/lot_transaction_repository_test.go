package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockLedgerRepository creates a GormLotTransactionRepository with a mocked SQL connection
func newMockLedgerRepository(t *testing.T) (*GormLotTransactionRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormLotTransactionRepository(gormDB), mock, mockDB
}

func TestGormLotTransactionRepository_FindByLot(t *testing.T) {
	t.Run("filters by lot and orders by transaction date", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		lotID := uuid.New()
		productID := uuid.New()

		rows := sqlmock.NewRows([]string{
			"id", "lot_id", "product_id", "transaction_type", "quantity",
			"quantity_before", "quantity_after", "transaction_date",
		}).
			AddRow(uuid.New(), lotID, productID, "inbound", decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(100), time.Now().Add(-time.Hour)).
			AddRow(uuid.New(), lotID, productID, "outbound", decimal.NewFromInt(40), decimal.NewFromInt(100), decimal.NewFromInt(60), time.Now())

		mock.ExpectQuery(`SELECT \* FROM "lot_transactions" WHERE lot_id = \$1 ORDER BY transaction_date DESC`).
			WithArgs(lotID).
			WillReturnRows(rows)

		txs, err := repo.FindByLot(context.Background(), lotID, inventory.TransactionFilter{})

		assert.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, inventory.TransactionTypeInbound, txs[0].TransactionType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("applies type and date range filters", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		lotID := uuid.New()
		txType := inventory.TransactionTypeOutbound
		start := time.Now().Add(-24 * time.Hour)
		end := time.Now()

		mock.ExpectQuery(`SELECT \* FROM "lot_transactions" WHERE lot_id = \$1 AND transaction_type = \$2 AND transaction_date >= \$3 AND transaction_date <= \$4 ORDER BY transaction_date DESC`).
			WithArgs(lotID, txType, start, end).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		txs, err := repo.FindByLot(context.Background(), lotID, inventory.TransactionFilter{
			TransactionType: &txType,
			StartDate:       &start,
			EndDate:         &end,
		})

		assert.NoError(t, err)
		assert.Empty(t, txs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLotTransactionRepository_CountByLot(t *testing.T) {
	t.Run("applies type and date filters to the count", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		lotID := uuid.New()
		txType := inventory.TransactionTypeOutbound
		start := time.Now().Add(-24 * time.Hour)

		mock.ExpectQuery(`SELECT count\(\*\) FROM "lot_transactions" WHERE lot_id = \$1 AND transaction_type = \$2 AND transaction_date >= \$3`).
			WithArgs(lotID, txType, start).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.CountByLot(context.Background(), lotID, inventory.TransactionFilter{
			TransactionType: &txType,
			StartDate:       &start,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLotTransactionRepository_CreateBatch(t *testing.T) {
	t.Run("no-op for empty batch", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		err := repo.CreateBatch(context.Background(), nil)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserts all entries", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		tx1, err := inventory.NewProductTransaction(uuid.New(), inventory.TransactionTypeInbound,
			decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(10))
		require.NoError(t, err)
		tx2, err := inventory.NewProductTransaction(uuid.New(), inventory.TransactionTypeOutbound,
			decimal.NewFromInt(5), decimal.NewFromInt(10), decimal.NewFromInt(5))
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "lot_transactions"`).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err = repo.CreateBatch(context.Background(), []*inventory.LotTransaction{tx1, tx2})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLotTransactionRepository_SummarizeMovementSince(t *testing.T) {
	t.Run("maps grouped rows by product", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		productA := uuid.New()
		productB := uuid.New()
		lastInbound := time.Now().Add(-48 * time.Hour)
		since := time.Now().AddDate(0, 0, -90)

		rows := sqlmock.NewRows([]string{"product_id", "outbound_total", "last_inbound_at"}).
			AddRow(productA, decimal.NewFromInt(90), lastInbound).
			AddRow(productB, decimal.Zero, nil)

		mock.ExpectQuery(`SELECT product_id,.*FROM "lot_transactions" WHERE lot_id IS NULL AND transaction_date >= \$3 GROUP BY "product_id"`).
			WithArgs(string(inventory.TransactionTypeOutbound), string(inventory.TransactionTypeInbound), since).
			WillReturnRows(rows)

		summaries, err := repo.SummarizeMovementSince(context.Background(), since)

		assert.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.True(t, summaries[productA].OutboundTotal.Equal(decimal.NewFromInt(90)))
		require.NotNil(t, summaries[productA].LastInboundAt)
		assert.True(t, summaries[productB].OutboundTotal.IsZero())
		assert.Nil(t, summaries[productB].LastInboundAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty map when no movement", func(t *testing.T) {
		repo, mock, mockDB := newMockLedgerRepository(t)
		defer mockDB.Close()

		since := time.Now().AddDate(0, 0, -90)

		mock.ExpectQuery(`SELECT product_id,.*FROM "lot_transactions" WHERE lot_id IS NULL AND transaction_date >= \$3 GROUP BY "product_id"`).
			WithArgs(string(inventory.TransactionTypeOutbound), string(inventory.TransactionTypeInbound), since).
			WillReturnRows(sqlmock.NewRows([]string{"product_id", "outbound_total", "last_inbound_at"}))

		summaries, err := repo.SummarizeMovementSince(context.Background(), since)

		assert.NoError(t, err)
		assert.Empty(t, summaries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

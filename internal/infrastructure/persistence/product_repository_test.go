package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/catalog"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockProductRepository creates a GormProductRepository with a mocked SQL connection
func newMockProductRepository(t *testing.T) (*GormProductRepository, sqlmock.Sqlmock, *sql.DB) {
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

	return NewGormProductRepository(gormDB), mock, mockDB
}

func productColumns() []string {
	return []string{"id", "code", "name", "unit", "type", "current_stock", "is_active", "version"}
}

func TestGormProductRepository_FindByID(t *testing.T) {
	t.Run("finds existing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows(productColumns()).
			AddRow(productID, "RM-001", "Raw Cotton", "kg", "raw_material", decimal.NewFromInt(120), true, 1)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnRows(rows)

		product, err := repo.FindByID(context.Background(), productID)

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, "RM-001", product.Code)
		assert.Equal(t, catalog.ProductTypeRawMaterial, product.Type)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for missing product", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(productID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		product, err := repo.FindByID(context.Background(), productID)

		assert.Error(t, err)
		assert.Nil(t, product)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByCode(t *testing.T) {
	t.Run("uppercases the code before querying", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		rows := sqlmock.NewRows(productColumns()).
			AddRow(productID, "RM-001", "Raw Cotton", "kg", "raw_material", decimal.NewFromInt(120), true, 1)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE code = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("RM-001", 1).
			WillReturnRows(rows)

		product, err := repo.FindByCode(context.Background(), "rm-001")

		assert.NoError(t, err)
		assert.NotNil(t, product)
		assert.Equal(t, "RM-001", product.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindActive(t *testing.T) {
	t.Run("filters by type when given", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		productType := catalog.ProductTypeFinished

		rows := sqlmock.NewRows(productColumns()).
			AddRow(productID, "FG-001", "Woven Fabric", "m", "finished", decimal.NewFromInt(40), true, 1)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE is_active = \$1 AND type = \$2 ORDER BY code ASC`).
			WithArgs(true, productType).
			WillReturnRows(rows)

		products, err := repo.FindActive(context.Background(), &productType)

		assert.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "FG-001", products[0].Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns all active without type filter", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows(productColumns()).
			AddRow(uuid.New(), "FG-001", "Woven Fabric", "m", "finished", decimal.NewFromInt(40), true, 1).
			AddRow(uuid.New(), "RM-001", "Raw Cotton", "kg", "raw_material", decimal.NewFromInt(120), true, 1)

		mock.ExpectQuery(`SELECT \* FROM "products" WHERE is_active = \$1 ORDER BY code ASC`).
			WithArgs(true).
			WillReturnRows(rows)

		products, err := repo.FindActive(context.Background(), nil)

		assert.NoError(t, err)
		assert.Len(t, products, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_SaveWithLock(t *testing.T) {
	t.Run("returns conflict when version moved on", func(t *testing.T) {
		repo, mock, mockDB := newMockProductRepository(t)
		defer mockDB.Close()

		product, err := catalog.NewProduct("RM-001", "Raw Cotton", "kg", catalog.ProductTypeRawMaterial)
		require.NoError(t, err)
		require.NoError(t, product.IncreaseStock(decimal.NewFromInt(50))) // version 2

		mock.ExpectExec(`UPDATE "products" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), product)

		assert.Error(t, err)
		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

package persistence

import (
	"context"

	appinventory "github.com/erurang/wooyangcrm-sub010/internal/application/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/catalog"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the inventory TransactionScope
// using GORM database transactions
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. All
// repositories handed to fn are bound to that transaction; an error from fn
// rolls everything back.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

// gormInventoryRepositories provides transaction-bound repositories
type gormInventoryRepositories struct {
	tx *gorm.DB
}

func (r *gormInventoryRepositories) LotRepo() inventory.LotRepository {
	return NewGormLotRepository(r.tx)
}

func (r *gormInventoryRepositories) SplitRepo() inventory.LotSplitRepository {
	return NewGormLotSplitRepository(r.tx)
}

func (r *gormInventoryRepositories) LedgerRepo() inventory.LotTransactionRepository {
	return NewGormLotTransactionRepository(r.tx)
}

func (r *gormInventoryRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)

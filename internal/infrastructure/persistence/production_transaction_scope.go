package persistence

import (
	"context"

	approduction "github.com/erurang/wooyangcrm-sub010/internal/application/production"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/catalog"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/inventory"
	"github.com/erurang/wooyangcrm-sub010/internal/domain/production"
	"gorm.io/gorm"
)

// GormProductionTransactionScope implements the production TransactionScope
// using GORM database transactions
type GormProductionTransactionScope struct {
	db *gorm.DB
}

// NewGormProductionTransactionScope creates a new GormProductionTransactionScope
func NewGormProductionTransactionScope(db *gorm.DB) *GormProductionTransactionScope {
	return &GormProductionTransactionScope{db: db}
}

// Execute runs the given function within a database transaction. All
// repositories handed to fn are bound to that transaction; an error from fn
// rolls everything back.
func (s *GormProductionTransactionScope) Execute(ctx context.Context, fn func(repos approduction.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProductionRepositories{tx: tx})
	})
}

// gormProductionRepositories provides transaction-bound repositories
type gormProductionRepositories struct {
	tx *gorm.DB
}

func (r *gormProductionRepositories) RecordRepo() production.RecordRepository {
	return NewGormRecordRepository(r.tx)
}

func (r *gormProductionRepositories) ConsumptionRepo() production.ConsumptionRepository {
	return NewGormConsumptionRepository(r.tx)
}

func (r *gormProductionRepositories) LedgerRepo() inventory.LotTransactionRepository {
	return NewGormLotTransactionRepository(r.tx)
}

func (r *gormProductionRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

var _ approduction.TransactionScope = (*GormProductionTransactionScope)(nil)
var _ approduction.TransactionalRepositories = (*gormProductionRepositories)(nil)

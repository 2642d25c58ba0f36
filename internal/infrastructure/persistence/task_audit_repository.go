package persistence

import (
	"context"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/task"
	"gorm.io/gorm"
)

// GormAuditLogRepository implements AuditLogRepository using GORM.
// Audit entries are append-only.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Record appends one audit entry
func (r *GormAuditLogRepository) Record(ctx context.Context, entry *task.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Ensure GormAuditLogRepository implements AuditLogRepository
var _ task.AuditLogRepository = (*GormAuditLogRepository)(nil)

package production

import (
	"testing"
	"time"

	"github.com/erurang/wooyangcrm-sub010/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecord(t *testing.T) *ProductionRecord {
	t.Helper()
	r, err := NewProductionRecord(uuid.New(), decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)
	return r
}

func TestNewProductionRecord(t *testing.T) {
	t.Run("creates completed record", func(t *testing.T) {
		r := newTestRecord(t)
		assert.Equal(t, RecordStatusCompleted, r.Status)
		assert.False(t, r.IsCanceled())
		assert.NoError(t, r.CanConsume())
		assert.Equal(t, 1, r.GetVersion())
	})

	t.Run("defaults zero production date to now", func(t *testing.T) {
		r, err := NewProductionRecord(uuid.New(), decimal.NewFromInt(1), time.Time{})
		require.NoError(t, err)
		assert.False(t, r.ProductionDate.IsZero())
	})

	t.Run("rejects empty product", func(t *testing.T) {
		_, err := NewProductionRecord(uuid.Nil, decimal.NewFromInt(1), time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewProductionRecord(uuid.New(), decimal.Zero, time.Now())
		assert.Error(t, err)
	})
}

func TestProductionRecord_Cancel(t *testing.T) {
	t.Run("records cancellation audit fields", func(t *testing.T) {
		r := newTestRecord(t)
		actor := uuid.New()
		require.NoError(t, r.Cancel(&actor, "wrong batch booked"))
		assert.True(t, r.IsCanceled())
		require.NotNil(t, r.CanceledBy)
		assert.Equal(t, actor, *r.CanceledBy)
		require.NotNil(t, r.CanceledAt)
		assert.Equal(t, "wrong batch booked", r.CancelReason)
		assert.Equal(t, 2, r.GetVersion())
	})

	t.Run("second cancellation is rejected", func(t *testing.T) {
		r := newTestRecord(t)
		require.NoError(t, r.Cancel(nil, "operator error"))
		err := r.Cancel(nil, "again")
		assert.ErrorIs(t, err, shared.ErrAlreadyCanceled)
		assert.Equal(t, 2, r.GetVersion())
		assert.Equal(t, "operator error", r.CancelReason)
	})

	t.Run("canceled record refuses consumption", func(t *testing.T) {
		r := newTestRecord(t)
		require.NoError(t, r.Cancel(nil, ""))
		assert.Error(t, r.CanConsume())
	})
}

func TestNewProductionConsumption(t *testing.T) {
	recordID, materialID := uuid.New(), uuid.New()

	t.Run("creates row with consistent snapshots", func(t *testing.T) {
		c, err := NewProductionConsumption(recordID, materialID,
			decimal.NewFromInt(4), decimal.NewFromFloat(2.5),
			decimal.NewFromInt(10), decimal.NewFromInt(6))
		require.NoError(t, err)
		assert.True(t, c.Cost().Equal(decimal.NewFromInt(10)))
	})

	t.Run("rejects inconsistent snapshots", func(t *testing.T) {
		_, err := NewProductionConsumption(recordID, materialID,
			decimal.NewFromInt(4), decimal.NewFromFloat(2.5),
			decimal.NewFromInt(10), decimal.NewFromInt(7))
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SNAPSHOT", domainErr.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewProductionConsumption(recordID, materialID,
			decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(5), decimal.NewFromInt(5))
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProductionConsumption(recordID, materialID,
			decimal.NewFromInt(1), decimal.NewFromInt(-1), decimal.NewFromInt(5), decimal.NewFromInt(4))
		assert.Error(t, err)
	})

	t.Run("rejects missing references", func(t *testing.T) {
		_, err := NewProductionConsumption(uuid.Nil, materialID,
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(5), decimal.NewFromInt(4))
		assert.Error(t, err)
		_, err = NewProductionConsumption(recordID, uuid.Nil,
			decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(5), decimal.NewFromInt(4))
		assert.Error(t, err)
	})
}

package auditlog

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fatflowers/motorvault/internal/models"
	"github.com/fatflowers/motorvault/pkg/logctx"
	"github.com/fatflowers/motorvault/pkg/tool"
	"github.com/fatflowers/motorvault/pkg/types"
)

// Service persists storage self-healing events (corruption purges, resets)
// to the audit table and serves the admin listing API.
type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Record asynchronously persists an audit entry. It implements the store's
// AuditRecorder hook and must never block a mutation.
func (s *Service) Record(ctx context.Context, action models.StorageAuditAction, key, reason string, detail map[string]any) {
	entry := &models.StorageAuditLog{
		ID:       tool.GenerateUUIDV7(),
		Action:   action,
		StoreKey: key,
		Reason:   reason,
	}
	if detail != nil {
		if payload, err := json.Marshal(detail); err == nil {
			entry.Detail = payload
		}
	}
	go func() {
		if err := s.db.Save(entry).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save storage audit log: %v", err)
		}
	}()
}

type ScanRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanResponse struct {
	Items []*models.StorageAuditLog `json:"items"`
	Total int64                     `json:"total"`
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

// Scan implements paginated admin listing with filters.
func (s *Service) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.From < 0 {
		req.From = 0
	}

	tx := s.db.WithContext(ctx).Model(&models.StorageAuditLog{})
	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var rows []*models.StorageAuditLog

	q := tx.Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	if req.SortBy == "" {
		req.SortBy = "created_at"
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: req.SortBy}, Desc: req.SortOrder != "asc"}}})
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return &ScanResponse{Items: rows, Total: total}, nil
}

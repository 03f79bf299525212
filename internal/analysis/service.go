package analysis

import (
	"context"
	"fmt"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

// RecordStore persists the scored records.
type RecordStore interface {
	SaveRecords(ctx context.Context, records []*contracts.CompanyRecord) error
}

// Exporter writes the flat score table for the dashboard.
type Exporter interface {
	Write(records []*contracts.CompanyRecord) error
}

// Service runs the full refresh: analyze the universe, persist the records
// and export the score table. Shared by the CLI, the API and the scheduler.
type Service struct {
	builder  *Builder
	store    RecordStore
	exporter Exporter
	logger   *logger.Logger
}

// NewService creates the refresh service. store and exporter may be nil
// when persistence or export is not wired (one-off CLI runs).
func NewService(builder *Builder, store RecordStore, exporter Exporter, log *logger.Logger) *Service {
	return &Service{
		builder:  builder,
		store:    store,
		exporter: exporter,
		logger:   log,
	}
}

// Refresh runs the pipeline over the watchlist and fans the records out to
// the store and the exporter.
func (s *Service) Refresh(ctx context.Context) ([]*contracts.CompanyRecord, error) {
	records, err := s.builder.BuildUniverse(ctx)
	if err != nil {
		return nil, fmt.Errorf("build universe: %w", err)
	}

	if s.store != nil {
		if err := s.store.SaveRecords(ctx, records); err != nil {
			return nil, fmt.Errorf("save records: %w", err)
		}
	}

	if s.exporter != nil {
		if err := s.exporter.Write(records); err != nil {
			return nil, fmt.Errorf("export records: %w", err)
		}
	}

	s.logger.WithField("count", len(records)).Info("Refresh complete")
	return records, nil
}

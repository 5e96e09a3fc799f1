package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lmmx/bisque"
)

// Ensure LoggingRecordService implements bisque.RecordService.
var _ bisque.RecordService = (*LoggingRecordService)(nil)

// LoggingRecordService wraps a RecordService with write-path logging.
// Read operations delegate without logging.
type LoggingRecordService struct {
	next   bisque.RecordService
	logger *slog.Logger
}

// NewLoggingRecordService creates a new LoggingRecordService.
func NewLoggingRecordService(next bisque.RecordService, logger *slog.Logger) *LoggingRecordService {
	return &LoggingRecordService{next: next, logger: logger}
}

// CreateRecord delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) CreateRecord(ctx context.Context, rec *bisque.StoredRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("record stored",
			"schema", rec.Schema,
			"source", rec.Source,
			"id", rec.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRecord(ctx, rec)
}

// FindRecordByID delegates to the wrapped service.
func (s *LoggingRecordService) FindRecordByID(ctx context.Context, id string) (*bisque.StoredRecord, error) {
	return s.next.FindRecordByID(ctx, id)
}

// FindRecords delegates to the wrapped service.
func (s *LoggingRecordService) FindRecords(ctx context.Context, filter bisque.RecordFilter) ([]*bisque.StoredRecord, error) {
	return s.next.FindRecords(ctx, filter)
}

// DeleteRecord delegates to the wrapped service and logs the operation.
func (s *LoggingRecordService) DeleteRecord(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("record deleted",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteRecord(ctx, id)
}

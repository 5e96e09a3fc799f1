package mock

import (
	"context"

	"github.com/lmmx/bisque"
)

var _ bisque.RecordService = (*RecordService)(nil)

// RecordService is a mock implementation of bisque.RecordService.
type RecordService struct {
	CreateRecordFn   func(ctx context.Context, rec *bisque.StoredRecord) error
	FindRecordByIDFn func(ctx context.Context, id string) (*bisque.StoredRecord, error)
	FindRecordsFn    func(ctx context.Context, filter bisque.RecordFilter) ([]*bisque.StoredRecord, error)
	DeleteRecordFn   func(ctx context.Context, id string) error
}

func (s *RecordService) CreateRecord(ctx context.Context, rec *bisque.StoredRecord) error {
	return s.CreateRecordFn(ctx, rec)
}

func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*bisque.StoredRecord, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *RecordService) FindRecords(ctx context.Context, filter bisque.RecordFilter) ([]*bisque.StoredRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}

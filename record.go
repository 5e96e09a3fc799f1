package bisque

import (
	"context"
	"time"
)

// StoredRecord is a persisted extraction result.
type StoredRecord struct {
	ID string `json:"id"`

	// Schema is the name of the record schema that produced the fields.
	Schema string `json:"schema"`

	// Source identifies the document the record was extracted from
	// (a file path or URL).
	Source string `json:"source"`

	// Fields holds the extracted values, as in Result.Fields.
	Fields map[string]any `json:"fields"`

	// FieldsHash is a content hash of the serialized fields, set by the
	// store on creation. Useful for change detection across re-extractions
	// of the same source.
	FieldsHash string `json:"fieldsHash"`

	ExtractedAt time.Time `json:"extractedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *StoredRecord) Validate() error {
	if r.Schema == "" {
		return Errorf(EINVALID, "record schema name required")
	}
	if r.Source == "" {
		return Errorf(EINVALID, "record source required")
	}
	if len(r.Fields) == 0 {
		return Errorf(EINVALID, "record fields required")
	}
	return nil
}

// RecordService manages persisted extraction results.
type RecordService interface {
	// CreateRecord persists a new record, assigning its ID, FieldsHash
	// and ExtractedAt.
	CreateRecord(ctx context.Context, rec *StoredRecord) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if the record does not exist.
	FindRecordByID(ctx context.Context, id string) (*StoredRecord, error)

	// FindRecords retrieves records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*StoredRecord, error)

	// DeleteRecord permanently removes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	ID     *string `json:"id"`
	Schema *string `json:"schema"`
	Source *string `json:"source"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

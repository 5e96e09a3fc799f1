package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/lmmx/bisque"
)

// Compile-time interface verification.
var _ bisque.RecordService = (*RecordService)(nil)

// RecordService implements bisque.RecordService using SQLite. Field values
// are stored as a JSON document, so numeric values read back as JSON
// numbers (float64) regardless of the coercer's original Go type.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// hashFields computes xxHash of the serialized fields and returns a hex
// string, used for change detection across re-extractions of one source.
func hashFields(payload []byte) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64(payload))
	return hex.EncodeToString(b)
}

// CreateRecord persists a new record, assigning its ID, FieldsHash and
// ExtractedAt.
func (s *RecordService) CreateRecord(ctx context.Context, rec *bisque.StoredRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(rec.Fields)
	if err != nil {
		return bisque.Errorf(bisque.EINVALID, "fields not serializable: %v", err)
	}

	rec.ID = uuid.New().String()
	rec.ExtractedAt = time.Now().UTC()
	rec.FieldsHash = hashFields(payload)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO records (id, schema_name, source, fields, fields_hash, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Schema, rec.Source, string(payload), rec.FieldsHash,
		rec.ExtractedAt.Format(time.RFC3339))

	return err
}

// FindRecordByID retrieves a record by ID.
func (s *RecordService) FindRecordByID(ctx context.Context, id string) (*bisque.StoredRecord, error) {
	var rec bisque.StoredRecord
	var payload, extractedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, schema_name, source, fields, fields_hash, extracted_at
		FROM records
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Schema, &rec.Source, &payload, &rec.FieldsHash, &extractedAt)

	if err == sql.ErrNoRows {
		return nil, bisque.Errorf(bisque.ENOTFOUND, "record not found")
	}
	if err != nil {
		return nil, err
	}

	if err := scanRecord(&rec, payload, extractedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindRecords retrieves records matching the filter, newest first.
func (s *RecordService) FindRecords(ctx context.Context, filter bisque.RecordFilter) ([]*bisque.StoredRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, schema_name, source, fields, fields_hash, extracted_at FROM records WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Schema != nil {
		query.WriteString(" AND schema_name = ?")
		args = append(args, *filter.Schema)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}

	query.WriteString(" ORDER BY extracted_at DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*bisque.StoredRecord
	for rows.Next() {
		var rec bisque.StoredRecord
		var payload, extractedAt string

		if err := rows.Scan(&rec.ID, &rec.Schema, &rec.Source, &payload, &rec.FieldsHash, &extractedAt); err != nil {
			return nil, err
		}
		if err := scanRecord(&rec, payload, extractedAt); err != nil {
			return nil, err
		}
		recs = append(recs, &rec)
	}

	return recs, rows.Err()
}

// DeleteRecord permanently removes a record.
func (s *RecordService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return bisque.Errorf(bisque.ENOTFOUND, "record not found")
	}
	return nil
}

func scanRecord(rec *bisque.StoredRecord, payload, extractedAt string) error {
	if err := json.Unmarshal([]byte(payload), &rec.Fields); err != nil {
		return fmt.Errorf("failed to parse fields: %w", err)
	}
	t, err := time.Parse(time.RFC3339, extractedAt)
	if err != nil {
		return fmt.Errorf("failed to parse extracted_at: %w", err)
	}
	rec.ExtractedAt = t
	return nil
}

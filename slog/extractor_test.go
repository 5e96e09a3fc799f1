package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/lmmx/bisque"
	"github.com/lmmx/bisque/mock"
	bisqueslog "github.com/lmmx/bisque/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	schema := &bisque.Record{
		Name:   "article",
		Fields: []bisque.Field{{Name: "title", Selector: "h1", Mode: bisque.ModeOne, Type: bisque.TypeString}},
	}

	t.Run("logs schema, failure count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(schema *bisque.Record, root *bisque.Node) (*bisque.Result, error) {
				return &bisque.Result{
					Fields: map[string]any{},
					Errs:   []bisque.FieldError{{Path: "title", Kind: bisque.FailMissing, Message: "gone"}},
				}, nil
			},
		}

		ex := bisqueslog.NewLoggingExtractor(inner, logger)
		res, err := ex.Extract(schema, bisque.NewDocument())

		require.NoError(t, err)
		assert.False(t, res.OK())
		output := buf.String()
		assert.Contains(t, output, "record extraction")
		assert.Contains(t, output, "schema=article")
		assert.Contains(t, output, "failures=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(schema *bisque.Record, root *bisque.Node) (*bisque.Result, error) {
				return nil, errors.New("bad schema")
			},
		}

		ex := bisqueslog.NewLoggingExtractor(inner, logger)
		_, err := ex.Extract(schema, bisque.NewDocument())

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"bad schema\"")
	})
}

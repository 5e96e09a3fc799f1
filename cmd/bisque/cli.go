package main

import (
	"context"
	"io"

	"github.com/lmmx/bisque"
	"github.com/lmmx/bisque/extract"
	"github.com/lmmx/bisque/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Records   bisque.RecordService
	Extractor bisque.Extractor
	Binder    *extract.Binder
	HTML      bisque.Parser
	XML       bisque.Parser
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log service operations to stderr"`

	Get     GetCmd     `cmd:"" help:"Extract a record from a document"`
	Records RecordsCmd `cmd:"" help:"List or delete stored records"`
	Check   CheckCmd   `cmd:"" help:"Validate a schema file without extracting"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	Schema string `arg:"" help:"Schema file (YAML)"`
	Doc    string `arg:"" help:"Document file, or '-' for stdin"`
	XML    bool   `help:"Parse the document as XML instead of HTML"`
	Save   bool   `short:"s" help:"Store the extracted record"`
	Source string `help:"Source identifier stored with the record (defaults to the document path)"`
}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	Schema string `help:"Filter by schema name"`
	Limit  int    `default:"20" help:"Maximum records to list"`
	Delete string `help:"Delete the record with this ID instead of listing"`
}

// CheckCmd is the "check" subcommand.
type CheckCmd struct {
	Schema string `arg:"" help:"Schema file (YAML)"`
}

package main

import (
	"fmt"
	"time"

	"github.com/lmmx/bisque"
)

// Run executes the records command.
func (c *RecordsCmd) Run(deps *Dependencies) error {
	if c.Delete != "" {
		if err := deps.Records.DeleteRecord(deps.Ctx, c.Delete); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bisque.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Deleted record %s\n", c.Delete)
		return nil
	}

	filter := bisque.RecordFilter{Limit: c.Limit}
	if c.Schema != "" {
		filter.Schema = &c.Schema
	}

	records, err := deps.Records.FindRecords(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisque.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'bisque get --save' to store one.")
		return nil
	}

	for _, r := range records {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", r.ID, r.Schema, r.Source, r.ExtractedAt.Format(time.RFC3339))
	}

	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lmmx/bisque"
	"github.com/lmmx/bisque/yaml"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	schemaFile, err := os.Open(c.Schema)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot open schema file: %v\n", err)
		return err
	}
	defer schemaFile.Close()

	schema, err := yaml.LoadRecord(schemaFile)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisque.ErrorMessage(err))
		return err
	}

	var doc io.Reader = os.Stdin
	if c.Doc != "-" {
		f, err := os.Open(c.Doc)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot open document: %v\n", err)
			return err
		}
		defer f.Close()
		doc = f
	}

	parser := deps.HTML
	if c.XML {
		parser = deps.XML
	}

	root, err := parser.Parse(doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisque.ErrorMessage(err))
		return err
	}

	result, err := deps.Extractor.Extract(schema, root)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisque.ErrorMessage(err))
		return err
	}

	for _, fe := range result.Errs {
		fmt.Fprintf(deps.Stderr, "  %s\n", fe)
	}

	out, err := json.MarshalIndent(result.Fields, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))

	if c.Save {
		source := c.Source
		if source == "" {
			source = c.Doc
		}
		rec := &bisque.StoredRecord{
			Schema: schema.Name,
			Source: source,
			Fields: result.Fields,
		}
		if err := deps.Records.CreateRecord(deps.Ctx, rec); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", bisque.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved record %s\n", rec.ID)
	}

	return nil
}

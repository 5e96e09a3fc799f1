package main

import (
	"fmt"
	"os"

	"github.com/lmmx/bisque"
	"github.com/lmmx/bisque/yaml"
)

// Run executes the check command.
func (c *CheckCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Schema)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot open schema file: %v\n", err)
		return err
	}
	defer f.Close()

	schema, err := yaml.LoadRecord(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisque.ErrorMessage(err))
		return err
	}

	if err := deps.Binder.CompileSchema(schema); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisque.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Schema %q OK (%d fields)\n", schema.Name, len(schema.Fields))
	return nil
}

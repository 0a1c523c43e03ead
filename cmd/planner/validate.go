package main

import (
	"fmt"
	"os"
	"time"

	"github.com/vinayprograms/planner/internal/resolver"
)

// Run resolves a file of raw model output against the catalog without
// calling a model. Useful for checking saved transcripts and prompt
// experiments.
func (c *ValidateCmd) Run() error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("reading model output: %w", err)
	}

	rt, err := newRuntime(c.Config)
	if err != nil {
		return err
	}
	defer rt.close()

	tools, err := rt.registry.DiscoverAll()
	if err != nil {
		return err
	}

	res, err := resolver.New().Resolve(string(data), tools, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "✗ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Valid: %d steps, entry %s\n", len(res.Graph.Nodes), res.Graph.EntryID)
	for _, w := range res.Validation.Warnings {
		fmt.Println(warnStyle.Render("⚠ " + w))
	}
	return nil
}

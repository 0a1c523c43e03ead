package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vinayprograms/planner/internal/orchestrator"
)

// Run refines a saved proposal with feedback and writes the replacement.
func (c *RefineCmd) Run() error {
	data, err := os.ReadFile(c.Plan)
	if err != nil {
		return fmt.Errorf("reading proposal: %w", err)
	}
	var saved savedProposal
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("parsing proposal: %w", err)
	}
	if saved.Plan == nil {
		return fmt.Errorf("%s does not contain a plan", c.Plan)
	}

	rt, err := newRuntime(c.Config)
	if err != nil {
		return err
	}
	defer rt.close()

	proposal, err := rt.orch.Refine(context.Background(), orchestrator.RefineInput{
		Plan:     saved.Plan,
		Steps:    saved.Steps,
		Feedback: c.Feedback,
		Request:  saved.Request,
		APIKey:   c.APIKey,
	})
	if err != nil {
		return err
	}

	return emitProposal(proposal, saved.Request, c.Output, c.JSON)
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vinayprograms/planner/internal/orchestrator"
	"github.com/vinayprograms/planner/internal/plan"
)

// savedProposal is the on-disk form of a proposal, read back by refine.
type savedProposal struct {
	Request        string                  `json:"request"`
	Plan           *plan.PlanGraph         `json:"plan"`
	Steps          []plan.PlanStepProposal `json:"steps"`
	Rationale      string                  `json:"rationale"`
	Confidence     float64                 `json:"confidence"`
	TargetArtifact string                  `json:"targetArtifact"`
	Warnings       []string                `json:"warnings,omitempty"`
	Clarifications []string                `json:"clarifications,omitempty"`
}

// Run proposes a plan for the request and writes it to the output path.
func (c *PlanCmd) Run() error {
	rt, err := newRuntime(c.Config)
	if err != nil {
		return err
	}
	defer rt.close()

	proposal, err := rt.orch.Propose(context.Background(), orchestrator.ProposeInput{
		Request:        c.Request,
		KnownArtifacts: c.Artifact,
		TargetArtifact: c.Target,
		APIKey:         c.APIKey,
	}, orchestrator.NewRunContext())
	if err != nil {
		return err
	}

	return emitProposal(proposal, c.Request, c.Output, c.JSON)
}

// emitProposal saves the proposal and prints it.
func emitProposal(p *orchestrator.Proposal, request, output string, asJSON bool) error {
	saved := savedProposal{
		Request:        request,
		Plan:           p.Plan,
		Steps:          p.Steps,
		Rationale:      p.OverallRationale,
		Confidence:     p.Confidence,
		TargetArtifact: p.TargetArtifact,
		Warnings:       p.Warnings,
		Clarifications: p.SuggestedClarifications,
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("writing proposal: %w", err)
	}

	if asJSON {
		fmt.Println(string(data))
	} else {
		fmt.Print(renderProposal(p))
		fmt.Fprintf(os.Stderr, "\nProposal written to %s\n", output)
	}
	return nil
}

package main

import (
	"testing"

	"github.com/alecthomas/kong"
)

func TestPlanCmd_Parse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	_, err = parser.Parse([]string{"plan", "draft a PRD", "--target", "prd",
		"-a", "context-summary=team goals", "-o", "out.json"})
	if err != nil {
		t.Fatal(err)
	}

	if cli.Plan.Request != "draft a PRD" {
		t.Errorf("expected request 'draft a PRD', got %q", cli.Plan.Request)
	}
	if cli.Plan.Target != "prd" {
		t.Errorf("expected target 'prd', got %q", cli.Plan.Target)
	}
	if cli.Plan.Artifact["context-summary"] != "team goals" {
		t.Errorf("unexpected artifacts %v", cli.Plan.Artifact)
	}
	if cli.Plan.Output != "out.json" {
		t.Errorf("expected output 'out.json', got %q", cli.Plan.Output)
	}
}

func TestPlanCmd_DefaultOutput(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	_, err = parser.Parse([]string{"plan", "draft a PRD"})
	if err != nil {
		t.Fatal(err)
	}
	if cli.Plan.Output != "plan.json" {
		t.Errorf("expected default output 'plan.json', got %q", cli.Plan.Output)
	}
}

func TestRefineCmd_Parse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	_, err = parser.Parse([]string{"refine", "plan.json", "add a rollout section"})
	if err != nil {
		t.Fatal(err)
	}
	if cli.Refine.Plan != "plan.json" {
		t.Errorf("expected plan 'plan.json', got %q", cli.Refine.Plan)
	}
	if cli.Refine.Feedback != "add a rollout section" {
		t.Errorf("unexpected feedback %q", cli.Refine.Feedback)
	}
}

func TestValidateCmd_Parse(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}

	_, err = parser.Parse([]string{"validate", "transcript.txt", "--config", "alt.toml"})
	if err != nil {
		t.Fatal(err)
	}
	if cli.Validate.File != "transcript.txt" {
		t.Errorf("expected file 'transcript.txt', got %q", cli.Validate.File)
	}
	if cli.Validate.Config != "alt.toml" {
		t.Errorf("expected config 'alt.toml', got %q", cli.Validate.Config)
	}
}

func TestCLI_UnknownCommand(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parser.Parse([]string{"summon"}); err == nil {
		t.Error("expected error for unknown command")
	}
}

// Package main defines the CLI structure using kong.
package main

import "github.com/alecthomas/kong"

// CLI defines the command-line interface.
type CLI struct {
	Plan     PlanCmd     `cmd:"" help:"Propose a plan for a request"`
	Refine   RefineCmd   `cmd:"" help:"Refine a saved plan with feedback"`
	Catalog  CatalogCmd  `cmd:"" help:"List discovered tools"`
	Validate ValidateCmd `cmd:"" help:"Resolve saved model output offline"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// PlanCmd proposes a plan for a natural-language request.
type PlanCmd struct {
	Request  string            `arg:"" help:"Natural-language request to plan for"`
	Target   string            `help:"Target artifact kind to produce"`
	Artifact map[string]string `short:"a" help:"Known artifact kind=summary (repeatable)"`
	Output   string            `short:"o" default:"plan.json" help:"Path to write the proposal"`
	Config   string            `help:"Config file path"`
	APIKey   string            `help:"API key override for this request"`
	JSON     bool              `help:"Print the proposal as JSON instead of styled text"`
}

// RefineCmd refines a previously saved plan.
type RefineCmd struct {
	Plan     string `arg:"" help:"Saved proposal file to refine"`
	Feedback string `arg:"" help:"Feedback on the previous plan"`
	Output   string `short:"o" default:"plan.json" help:"Path to write the refined proposal"`
	Config   string `help:"Config file path"`
	APIKey   string `help:"API key override for this request"`
	JSON     bool   `help:"Print the proposal as JSON instead of styled text"`
}

// CatalogCmd lists the tools visible to the planner.
type CatalogCmd struct {
	Config string `help:"Config file path"`
	All    bool   `help:"Include skills superseded by subagents"`
}

// ValidateCmd resolves saved model output without a model call.
type ValidateCmd struct {
	File   string `arg:"" help:"File containing raw model output"`
	Config string `help:"Config file path"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

// kongVars returns variables for kong (version info).
func kongVars() kong.Vars {
	return kong.Vars{
		"version": version,
	}
}

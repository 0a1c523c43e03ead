package main

import (
	"fmt"
	"strings"

	"github.com/vinayprograms/planner/internal/plan"
)

// Run lists the tools the planner can see.
func (c *CatalogCmd) Run() error {
	rt, err := newRuntime(c.Config)
	if err != nil {
		return err
	}
	defer rt.close()

	var tools []plan.ToolDescriptor
	if c.All {
		skills, err := rt.registry.DiscoverSkills()
		if err != nil {
			return err
		}
		agents, err := rt.registry.DiscoverSubagents()
		if err != nil {
			return err
		}
		tools = append(agents, skills...)
	} else {
		tools, err = rt.registry.DiscoverAll()
		if err != nil {
			return err
		}
	}

	if len(tools) == 0 {
		fmt.Println("no tools discovered")
		return nil
	}

	for _, tool := range tools {
		fmt.Printf("%s  %s\n", stepStyle.Render(tool.ID), labelStyle.Render(string(tool.Kind)))
		fmt.Printf("  %s\n", tool.Description)
		if len(tool.InputArtifacts) > 0 {
			fmt.Printf("  %s %s\n", labelStyle.Render("consumes:"), strings.Join(tool.InputArtifacts, ", "))
		}
		if tool.OutputArtifact != "" {
			fmt.Printf("  %s %s\n", labelStyle.Render("produces:"), tool.OutputArtifact)
		}
	}
	return nil
}

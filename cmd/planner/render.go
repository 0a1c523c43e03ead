// Styled terminal rendering for proposals.
package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/vinayprograms/planner/internal/orchestrator"
)

const renderWidth = 100

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")) // White bold - headers

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray - labels

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")) // Blue - step ids

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")) // Yellow - warnings

	askStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")) // Cyan - clarifications
)

// renderProposal formats a proposal for terminal display.
func renderProposal(p *orchestrator.Proposal) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Plan %s", p.Plan.ID)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("target: "))
	b.WriteString(p.TargetArtifact)
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("confidence: "))
	b.WriteString(fmt.Sprintf("%.2f", p.Confidence))
	b.WriteString("\n")

	if p.OverallRationale != "" {
		b.WriteString(wordwrap.String(p.OverallRationale, renderWidth))
		b.WriteString("\n")
	}

	if len(p.Steps) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Steps"))
		b.WriteString("\n")
		for _, step := range p.Steps {
			b.WriteString("  ")
			b.WriteString(stepStyle.Render(step.ID))
			b.WriteString(labelStyle.Render(fmt.Sprintf(" [%s %s]", step.ToolType, step.ToolID)))
			b.WriteString(" ")
			b.WriteString(step.Label)
			if len(step.DependsOn) > 0 {
				b.WriteString(labelStyle.Render(" after " + strings.Join(step.DependsOn, ", ")))
			}
			b.WriteString("\n")
			if step.Rationale != "" {
				wrapped := wordwrap.String(step.Rationale, renderWidth-4)
				for _, line := range strings.Split(wrapped, "\n") {
					b.WriteString("    ")
					b.WriteString(labelStyle.Render(line))
					b.WriteString("\n")
				}
			}
		}
	}

	for _, w := range p.Warnings {
		b.WriteString(warnStyle.Render("⚠ " + w))
		b.WriteString("\n")
	}
	for _, c := range p.SuggestedClarifications {
		b.WriteString(askStyle.Render("? " + c))
		b.WriteString("\n")
	}

	return b.String()
}

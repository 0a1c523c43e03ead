// Static plan validation. All checks run and all errors accumulate so the
// caller sees every problem at once.
package resolver

import (
	"fmt"
	"strings"

	"github.com/vinayprograms/planner/internal/plan"
)

// Validation thresholds. Crossing either produces a warning, never an error.
const (
	lowConfidenceThreshold = 0.5
	oversizedPlanSteps     = 10
)

// Validation is the structured result of validating a provisional plan.
// Valid is true iff Errors is empty; Warnings never affect validity.
type Validation struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate applies the structural checks to a parsed plan against the
// catalog snapshot used for this resolution. It never returns an error
// value; everything it finds lands in the result. An empty plan carrying at
// least one clarification is valid with no further checks.
func (r *Resolver) Validate(p *plan.RawPlanOutput, tools []plan.ToolDescriptor) Validation {
	if len(p.Steps) == 0 {
		if len(p.Clarifications) > 0 {
			return Validation{Valid: true, Errors: []string{}, Warnings: []string{}}
		}
		return Validation{
			Valid:    false,
			Errors:   []string{"plan has no steps and no clarifications"},
			Warnings: []string{},
		}
	}

	var errs []string
	errs = append(errs, checkUniqueIDs(p.Steps)...)
	errs = append(errs, checkDependencies(p.Steps)...)
	errs = append(errs, checkToolReferences(p.Steps, tools)...)
	errs = append(errs, findCycles(p.Steps)...)

	var warnings []string
	if p.Confidence < lowConfidenceThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"confidence %.2f is below %.1f; the plan should probably not be presented without clarification",
			p.Confidence, lowConfidenceThreshold))
	}
	if len(p.Steps) > oversizedPlanSteps {
		warnings = append(warnings, fmt.Sprintf(
			"plan has %d steps; it may be unnecessarily large", len(p.Steps)))
	}

	v := Validation{Valid: len(errs) == 0, Errors: errs, Warnings: warnings}
	if !v.Valid {
		r.logger.Warn("plan failed validation", map[string]interface{}{
			"errors": len(v.Errors),
		})
	}
	return v
}

// checkUniqueIDs reports each id that appears more than once, once per id.
func checkUniqueIDs(steps []plan.RawStep) []string {
	counts := make(map[string]int, len(steps))
	order := make([]string, 0, len(steps))
	for _, s := range steps {
		if counts[s.ID] == 0 {
			order = append(order, s.ID)
		}
		counts[s.ID]++
	}
	var errs []string
	for _, id := range order {
		if counts[id] > 1 {
			errs = append(errs, fmt.Sprintf("duplicate step id %q", id))
		}
	}
	return errs
}

// checkDependencies reports every dependsOn reference to a step absent from
// this plan.
func checkDependencies(steps []plan.RawStep) []string {
	present := make(map[string]bool, len(steps))
	for _, s := range steps {
		present[s.ID] = true
	}
	var errs []string
	for _, s := range steps {
		for _, dep := range s.DependsOn {
			if !present[dep] {
				errs = append(errs, fmt.Sprintf("step %q depends on unknown step %q", s.ID, dep))
			}
		}
	}
	return errs
}

// checkToolReferences reports every toolId missing from the catalog snapshot.
func checkToolReferences(steps []plan.RawStep, tools []plan.ToolDescriptor) []string {
	known := make(map[string]bool, len(tools))
	for _, t := range tools {
		known[t.ID] = true
	}
	var errs []string
	for _, s := range steps {
		if !known[s.ToolID] {
			errs = append(errs, fmt.Sprintf("step %q references unknown tool %q", s.ID, s.ToolID))
		}
	}
	return errs
}

// findCycles runs an iterative depth-first traversal over the step
// dependency graph with an explicit stack, so recursion depth never limits
// plan size. Each time a node already on the traversal stack is revisited,
// the cyclic path from its first occurrence back to itself is recorded, and
// scanning continues over remaining unvisited components so every
// independent cycle is reported.
func findCycles(steps []plan.RawStep) []string {
	deps := make(map[string][]string, len(steps))
	for _, s := range steps {
		if _, ok := deps[s.ID]; !ok {
			deps[s.ID] = s.DependsOn
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // on the traversal stack
		black = 2 // fully explored
	)
	color := make(map[string]int, len(steps))

	type frame struct {
		id   string
		next int
	}

	var errs []string
	for _, root := range steps {
		if color[root.ID] != white {
			continue
		}
		stack := []frame{{id: root.ID}}
		path := []string{root.ID}
		color[root.ID] = gray

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := deps[top.id]
			if top.next < len(children) {
				child := children[top.next]
				top.next++
				if _, ok := deps[child]; !ok {
					// Dangling reference; the dependency check already
					// reported it.
					continue
				}
				switch color[child] {
				case gray:
					errs = append(errs, formatCycle(path, child))
				case white:
					color[child] = gray
					stack = append(stack, frame{id: child})
					path = append(path, child)
				}
				continue
			}
			color[top.id] = black
			stack = stack[:len(stack)-1]
			path = path[:len(path)-1]
		}
	}
	return errs
}

// formatCycle renders the ids from the first occurrence of start on the
// current path back around to start.
func formatCycle(path []string, start string) string {
	from := 0
	for i, id := range path {
		if id == start {
			from = i
			break
		}
	}
	cycle := append(append([]string{}, path[from:]...), start)
	return "dependency cycle: " + strings.Join(cycle, " -> ")
}

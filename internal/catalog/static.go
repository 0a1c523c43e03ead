// In-memory catalog for composed descriptors.
package catalog

import "github.com/vinayprograms/planner/internal/plan"

// Static is a fixed in-memory catalog. It serves embedded capability sets
// and tests; discovery never fails and ClearCache is a no-op.
type Static struct {
	tools []plan.ToolDescriptor
}

// NewStatic creates a static catalog over the given descriptors.
func NewStatic(tools []plan.ToolDescriptor) *Static {
	return &Static{tools: tools}
}

// DiscoverAll returns every descriptor, skills superseded by a subagent
// with the same output artifact suppressed.
func (s *Static) DiscoverAll() ([]plan.ToolDescriptor, error) {
	covered := make(map[string]bool)
	for _, t := range s.tools {
		if t.Kind == plan.ToolKindSubagent {
			covered[t.OutputArtifact] = true
		}
	}
	var all []plan.ToolDescriptor
	for _, t := range s.tools {
		if t.Kind == plan.ToolKindSkill && covered[t.OutputArtifact] {
			continue
		}
		all = append(all, t)
	}
	return all, nil
}

// DiscoverSkills returns the skill descriptors, unfiltered.
func (s *Static) DiscoverSkills() ([]plan.ToolDescriptor, error) {
	return s.filter(plan.ToolKindSkill), nil
}

// DiscoverSubagents returns the subagent descriptors.
func (s *Static) DiscoverSubagents() ([]plan.ToolDescriptor, error) {
	return s.filter(plan.ToolKindSubagent), nil
}

// ClearCache is a no-op; there is nothing to invalidate.
func (s *Static) ClearCache() {}

func (s *Static) filter(kind plan.ToolKind) []plan.ToolDescriptor {
	var out []plan.ToolDescriptor
	for _, t := range s.tools {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

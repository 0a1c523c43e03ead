// Convenience entry point chaining parse, validate, and translate.
package resolver

import (
	"time"

	"github.com/vinayprograms/planner/internal/plan"
)

// Resolution is the full output of resolving one model response.
type Resolution struct {
	Raw        *plan.RawPlanOutput
	Validation Validation
	Graph      *plan.PlanGraph
	Proposals  []plan.PlanStepProposal
}

// Resolve runs parse → validate → translate over one model response against
// a catalog snapshot. Parse failures surface as MalformedOutputError,
// validation failures as InvalidPlanError; there is no partial-success mode.
func (r *Resolver) Resolve(raw string, tools []plan.ToolDescriptor, createdAt time.Time) (*Resolution, error) {
	parsed, err := r.Parse(raw)
	if err != nil {
		return nil, err
	}

	v := r.Validate(parsed, tools)
	graph, proposals, err := r.Translate(parsed, tools, v, createdAt)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		Raw:        parsed,
		Validation: v,
		Graph:      graph,
		Proposals:  proposals,
	}, nil
}

// Package orchestrator sequences plan resolution: catalog discovery, prompt
// compilation, the model call, and the parse/validate/translate chain. It
// owns nothing between calls; each propose or refine is one suspension
// point around the model and pure work on either side.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vinayprograms/agentkit/logging"
	"github.com/vinayprograms/planner/internal/llm"
	"github.com/vinayprograms/planner/internal/plan"
	"github.com/vinayprograms/planner/internal/prompt"
	"github.com/vinayprograms/planner/internal/resolver"
	"github.com/vinayprograms/planner/internal/telemetry"
)

// Catalog is the read-only capability surface the orchestrator consumes.
// Calls must be side-effect free on the backing registries.
type Catalog interface {
	DiscoverAll() ([]plan.ToolDescriptor, error)
	DiscoverSkills() ([]plan.ToolDescriptor, error)
	DiscoverSubagents() ([]plan.ToolDescriptor, error)
	ClearCache()
}

// Options bounds the model call and carries the explicit process-wide
// defaults; nothing here is read from ambient globals.
type Options struct {
	MaxOutputTokens int
	Temperature     float64
	HistoryWindow   int
	DefaultAPIKey   string
	Examples        []prompt.WorkedExample
}

// RunContext carries identity through one resolution.
type RunContext struct {
	RunID string
	Now   func() time.Time
}

// NewRunContext creates a run context with a fresh run id and wall clock.
func NewRunContext() RunContext {
	return RunContext{RunID: uuid.New().String(), Now: time.Now}
}

// Settings is the request-level settings payload.
type Settings struct {
	APIKey string
}

// ProposeInput is one planning request.
type ProposeInput struct {
	Request        string
	KnownArtifacts map[string]string
	History        []prompt.Turn
	TargetArtifact string
	APIKey         string
	Settings       Settings
}

// RefineInput is one refinement request over a previously produced plan.
type RefineInput struct {
	Plan     *plan.PlanGraph
	Steps    []plan.PlanStepProposal
	Feedback string
	Request  string
	APIKey   string
	Settings Settings
}

// Proposal is the result handed back for approval or execution elsewhere.
type Proposal struct {
	Plan                    *plan.PlanGraph
	Steps                   []plan.PlanStepProposal
	OverallRationale        string
	Confidence              float64
	TargetArtifact          string
	Warnings                []string
	SuggestedClarifications []string
}

// UpstreamError wraps a model call failure. It is surfaced verbatim with no
// internal retry.
type UpstreamError struct {
	Cause error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model call failed: %v", e.Cause)
}

func (e *UpstreamError) Unwrap() error { return e.Cause }

// Orchestrator runs the propose and refine operations.
type Orchestrator struct {
	catalog  Catalog
	factory  llm.Factory
	resolver *resolver.Resolver
	notifier telemetry.Notifier
	logger   *logging.Logger
	opts     Options
}

// New creates an orchestrator. A nil notifier is replaced with a noop.
func New(cat Catalog, factory llm.Factory, notifier telemetry.Notifier, opts Options) *Orchestrator {
	if notifier == nil {
		notifier = telemetry.NewNoopNotifier()
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = 4096
	}
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 6
	}
	return &Orchestrator{
		catalog:  cat,
		factory:  factory,
		resolver: resolver.New(),
		notifier: notifier,
		logger:   logging.New().WithComponent("orchestrator"),
		opts:     opts,
	}
}

// Propose resolves a plan for a natural-language request: discover the
// catalog, compile the prompts, call the model once, and resolve the
// response. Any resolver error propagates; no fallback plan is synthesized.
func (o *Orchestrator) Propose(ctx context.Context, input ProposeInput, rc RunContext) (*Proposal, error) {
	if rc.RunID == "" {
		rc = NewRunContext()
	}
	if rc.Now == nil {
		rc.Now = time.Now
	}
	ctx, span := o.startResolutionSpan(ctx, "plan.propose", rc.RunID)

	tools, err := o.catalog.DiscoverAll()
	if err != nil {
		o.endResolutionSpan(span, "", err)
		return nil, fmt.Errorf("catalog discovery failed: %w", err)
	}

	systemPrompt := prompt.System(prompt.SystemInput{
		Tools:    tools,
		Examples: o.opts.Examples,
	})
	userPrompt := prompt.User(prompt.UserInput{
		Request:        input.Request,
		KnownArtifacts: input.KnownArtifacts,
		History:        input.History,
		HistoryWindow:  o.opts.HistoryWindow,
		TargetArtifact: input.TargetArtifact,
	})

	proposal, err := o.resolve(ctx, systemPrompt, userPrompt, tools, rc, resolveAPIKey(input.APIKey, input.Settings, o.opts.DefaultAPIKey))
	if err != nil {
		o.notify(telemetry.EventPlanRejected, rc, map[string]interface{}{"error": err.Error()})
		o.endResolutionSpan(span, "", err)
		return nil, err
	}

	o.notify(telemetry.EventPlanProposed, rc, map[string]interface{}{
		"plan":   proposal.Plan.ID,
		"target": proposal.TargetArtifact,
		"steps":  len(proposal.Steps),
	})
	o.endResolutionSpan(span, proposal.Plan.ID, nil)
	return proposal, nil
}

// Refine resolves a replacement plan from feedback on a previous one.
// Refinement is not a diff: the model re-plans from scratch with the old
// plan and the feedback as context, and no merging happens here.
func (o *Orchestrator) Refine(ctx context.Context, input RefineInput) (*Proposal, error) {
	rc := NewRunContext()
	ctx, span := o.startResolutionSpan(ctx, "plan.refine", rc.RunID)

	tools, err := o.catalog.DiscoverAll()
	if err != nil {
		o.endResolutionSpan(span, "", err)
		return nil, fmt.Errorf("catalog discovery failed: %w", err)
	}

	systemPrompt := prompt.System(prompt.SystemInput{
		Tools:    tools,
		Examples: o.opts.Examples,
	})
	refinePrompt := prompt.Refinement(prompt.RefinementInput{
		TargetArtifact: input.Plan.ArtifactKind,
		Rationale:      input.Plan.Metadata.Rationale,
		Confidence:     input.Plan.Metadata.Confidence,
		Steps:          input.Steps,
		Feedback:       input.Feedback,
		Request:        input.Request,
	})

	proposal, err := o.resolve(ctx, systemPrompt, refinePrompt, tools, rc, resolveAPIKey(input.APIKey, input.Settings, o.opts.DefaultAPIKey))
	if err != nil {
		o.notify(telemetry.EventPlanRejected, rc, map[string]interface{}{"error": err.Error()})
		o.endResolutionSpan(span, "", err)
		return nil, err
	}

	o.notify(telemetry.EventPlanRefined, rc, map[string]interface{}{
		"plan":     proposal.Plan.ID,
		"previous": input.Plan.ID,
		"steps":    len(proposal.Steps),
	})
	o.endResolutionSpan(span, proposal.Plan.ID, nil)
	return proposal, nil
}

// resolve performs the model call and the resolution chain shared by
// propose and refine.
func (o *Orchestrator) resolve(ctx context.Context, systemPrompt, userPrompt string, tools []plan.ToolDescriptor, rc RunContext, apiKey string) (*Proposal, error) {
	provider, err := o.factory.Provider(apiKey)
	if err != nil {
		return nil, fmt.Errorf("creating model provider: %w", err)
	}

	start := rc.Now()
	ctx, modelSpan := o.startModelSpan(ctx, systemPrompt, userPrompt)
	resp, err := provider.Complete(ctx, llm.CompletionRequest{
		System:          systemPrompt,
		User:            userPrompt,
		MaxOutputTokens: o.opts.MaxOutputTokens,
		Temperature:     o.opts.Temperature,
	})
	if err != nil {
		o.endModelSpan(modelSpan, nil, err)
		return nil, &UpstreamError{Cause: err}
	}
	o.endModelSpan(modelSpan, resp, nil)

	o.logger.Debug("model call complete", map[string]interface{}{
		"run":           rc.RunID,
		"duration_ms":   rc.Now().Sub(start).Milliseconds(),
		"input_tokens":  resp.Usage.InputTokens,
		"output_tokens": resp.Usage.OutputTokens,
	})

	res, err := o.resolver.Resolve(resp.Text, tools, rc.Now())
	if err != nil {
		return nil, err
	}

	return &Proposal{
		Plan:                    res.Graph,
		Steps:                   res.Proposals,
		OverallRationale:        res.Raw.OverallRationale,
		Confidence:              res.Raw.Confidence,
		TargetArtifact:          res.Raw.TargetArtifact,
		Warnings:                res.Graph.Metadata.Warnings,
		SuggestedClarifications: res.Raw.Clarifications,
	}, nil
}

// resolveAPIKey applies the explicit precedence: per-request attribute,
// then request settings, then the configured process default.
func resolveAPIKey(attr string, settings Settings, processDefault string) string {
	if attr != "" {
		return attr
	}
	if settings.APIKey != "" {
		return settings.APIKey
	}
	return processDefault
}

// notify emits one telemetry event. Notifier failures are the notifier's
// problem; nothing here can fail the resolution.
func (o *Orchestrator) notify(event string, rc RunContext, fields map[string]interface{}) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Warn("notifier panicked", map[string]interface{}{"event": event})
		}
	}()
	fields["run"] = rc.RunID
	o.notifier.Notify(event, fields)
}

// Tracing instrumentation for the orchestrator.
package orchestrator

import (
	"context"

	"github.com/vinayprograms/agentkit/telemetry"
	"github.com/vinayprograms/planner/internal/llm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// startResolutionSpan starts a span for one propose or refine operation.
func (o *Orchestrator) startResolutionSpan(ctx context.Context, operation, runID string) (context.Context, trace.Span) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.StartSpan(ctx, operation)
	span.SetAttributes(
		attribute.String("resolution.run", runID),
	)
	return ctx, span
}

// endResolutionSpan ends the resolution span with result info.
func (o *Orchestrator) endResolutionSpan(span trace.Span, planID string, err error) {
	if planID != "" {
		span.SetAttributes(attribute.String("resolution.plan", planID))
	}
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

// startModelSpan starts a span for the model call.
func (o *Orchestrator) startModelSpan(ctx context.Context, systemPrompt, userPrompt string) (context.Context, trace.Span) {
	tracer := telemetry.GetTracer()
	ctx, span := tracer.StartSpan(ctx, "model.complete")
	if tracer.Debug() {
		span.SetAttributes(
			attribute.String("model.system", truncateForTrace(systemPrompt, 2000)),
			attribute.String("model.user", truncateForTrace(userPrompt, 2000)),
		)
	}
	return ctx, span
}

// endModelSpan ends the model span with usage info.
func (o *Orchestrator) endModelSpan(span trace.Span, resp *llm.CompletionResponse, err error) {
	if resp != nil {
		span.SetAttributes(
			attribute.String("model.name", resp.Model),
			attribute.Int("model.input_tokens", resp.Usage.InputTokens),
			attribute.Int("model.output_tokens", resp.Usage.OutputTokens),
		)
	}
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

func truncateForTrace(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

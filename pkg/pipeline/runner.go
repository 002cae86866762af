package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umldraw/pkg/observability"
	"github.com/matzehuels/umldraw/pkg/uml"
)

// Runner encapsulates pipeline execution with logging and hooks.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with different
// options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete extract → layout → render pipeline.
// Relations that cannot be drawn are logged as warnings and counted in
// Stats.DroppedCount; they never fail the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Extract
	extractStart := time.Now()
	m, err := r.Extract(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	result.Model = m
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Stats.ClassCount = len(m.Classes)
	result.Stats.RelationCount = m.RelationCount()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	plan := r.Layout(ctx, m, opts)
	result.Plan = plan
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.EdgeCount = len(plan.Edges)
	result.Stats.DroppedCount = len(plan.Diagnostics)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: Render
	renderStart := time.Now()
	data, err := r.Render(ctx, m, plan, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifact = data
	result.Stats.RenderTime = time.Since(renderStart)

	return result, nil
}

// Extract reads opts.Source and builds its class model. Class names defined
// more than once are logged; both definitions are kept.
func (r *Runner) Extract(ctx context.Context, opts Options) (m *uml.Model, err error) {
	if err := opts.ValidateForExtract(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnExtractStart(ctx, opts.Source)
	start := time.Now()
	defer func() {
		n := 0
		if m != nil {
			n = len(m.Classes)
		}
		hooks.OnExtractComplete(ctx, opts.Source, n, time.Since(start), err)
	}()

	m, err = extractFile(opts)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("extracted classes",
		"source", opts.Source,
		"classes", len(m.Classes),
		"relations", m.RelationCount(),
		"duration", time.Since(start))

	for _, name := range m.DuplicateNames() {
		r.Logger.Info("class defined more than once; keeping every definition", "class", name)
		observability.Diagram().OnDuplicateClass(ctx, name)
	}
	return m, nil
}

// Layout computes box placement and resolves relations, logging every
// relation that is left out of the diagram.
func (r *Runner) Layout(ctx context.Context, m *uml.Model, opts Options) Plan {
	opts.SetRenderDefaults()

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(m.Classes))
	start := time.Now()

	plan := ComputePlan(m, opts)
	hooks.OnLayoutComplete(ctx, time.Since(start), nil)

	for _, d := range plan.Diagnostics {
		r.Logger.Warn(d.String(), "class", d.Class)
		observability.Diagram().OnRelationDropped(ctx, d.Class, string(d.Relation.Kind), d.Relation.Target)
	}

	r.Logger.Debug("computed layout",
		"boxes", len(plan.Layout.Boxes),
		"edges", len(plan.Edges),
		"width", plan.Layout.Width,
		"height", plan.Layout.Height,
		"duration", time.Since(start))
	return plan
}

// Render serializes the diagram in opts.Format.
func (r *Runner) Render(ctx context.Context, m *uml.Model, plan Plan, opts Options) (data []byte, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Format)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), err)
	}()

	data, err = Render(ctx, m, plan, opts)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("rendered diagram",
		"format", opts.Format,
		"bytes", len(data),
		"duration", time.Since(start))
	return data, nil
}

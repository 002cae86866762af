// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about pipeline stages and about relations dropped from a
// diagram.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the library packages
// never import a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetDiagramHooks(&myDiagramHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Pipeline().OnExtractStart(ctx, path)
//	// ... parse and extract ...
//	observability.Pipeline().OnExtractComplete(ctx, path, classCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the diagram pipeline.
type PipelineHooks interface {
	// Extract events cover parsing the source and building the class model.
	OnExtractStart(ctx context.Context, source string)
	OnExtractComplete(ctx context.Context, source string, classCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, classCount int)
	OnLayoutComplete(ctx context.Context, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Diagram Hooks
// =============================================================================

// DiagramHooks receives events about diagram content.
type DiagramHooks interface {
	// OnRelationDropped records a relation that could not be drawn.
	OnRelationDropped(ctx context.Context, class, kind, target string)

	// OnDuplicateClass records a class name defined more than once.
	OnDuplicateClass(ctx context.Context, name string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnExtractStart(context.Context, string) {}
func (NoopPipelineHooks) OnExtractComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                     {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, string)                  {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {
}

// NoopDiagramHooks is a no-op implementation of DiagramHooks.
type NoopDiagramHooks struct{}

func (NoopDiagramHooks) OnRelationDropped(context.Context, string, string, string) {}
func (NoopDiagramHooks) OnDuplicateClass(context.Context, string)                  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	diagramHooks  DiagramHooks  = NoopDiagramHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks.
// This should be called once at application startup before any pipeline operations.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetDiagramHooks registers custom diagram hooks.
func SetDiagramHooks(h DiagramHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		diagramHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Diagram returns the registered diagram hooks.
func Diagram() DiagramHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return diagramHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	diagramHooks = NoopDiagramHooks{}
}

// Package observability lets the CLI and the server watch the pipeline
// without the pipeline importing a logging or metrics backend.
//
// Libraries report events through the registered hooks:
//
//	observability.Pipeline().OnLayoutStart(ctx, "pedigree", "I1")
//	observability.Cache().OnCacheHit(ctx, "layout")
//
// Every hook defaults to a no-op. Programs install their own once at
// startup, before any work starts:
//
//	observability.Register(observability.Hooks{Pipeline: myHooks})
//
// [LogHooks] implements all three interfaces on a charmbracelet logger; the
// CLI installs it under --verbose.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from dataset loading, layout and rendering.
type PipelineHooks interface {
	// source is a directory or database name.
	OnLoadStart(ctx context.Context, source string)
	OnLoadComplete(ctx context.Context, source string, people int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, style, focus string)
	OnLayoutComplete(ctx context.Context, style string, nodeCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache events. keyType is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API. route is the chi route
// pattern, not the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, route string, err error)
}

type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnLoadStart(context.Context, string)                                 {}
func (NoopPipelineHooks) OnLoadComplete(context.Context, string, int, time.Duration, error)    {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, string, string)                       {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)    {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// Hooks is one set of registered hooks.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

func noopHooks() *Hooks {
	return &Hooks{NoopPipelineHooks{}, NoopCacheHooks{}, NoopHTTPHooks{}}
}

var current atomic.Pointer[Hooks]

func init() { current.Store(noopHooks()) }

// Register installs h. Nil fields keep the hooks registered before.
func Register(h Hooks) {
	next := *current.Load()
	if h.Pipeline != nil {
		next.Pipeline = h.Pipeline
	}
	if h.Cache != nil {
		next.Cache = h.Cache
	}
	if h.HTTP != nil {
		next.HTTP = h.HTTP
	}
	current.Store(&next)
}

// Reset restores the no-op hooks.
func Reset() { current.Store(noopHooks()) }

func Pipeline() PipelineHooks { return current.Load().Pipeline }
func Cache() CacheHooks       { return current.Load().Cache }
func HTTP() HTTPHooks         { return current.Load().HTTP }

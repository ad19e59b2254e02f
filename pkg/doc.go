// Package pkg provides the core libraries for kinview family tree layouts.
//
// # Overview
//
// Kinview draws a genealogical tree around one focus person: ancestors above,
// descendants below, spouses side by side. The pkg directory is organized
// into these areas:
//
//  1. [kinship] - The immutable person graph, search and relationship paths
//  2. [layout] - Tree construction and positioning for the four layout styles
//  3. [relate] - English relationship names for a path between two people
//  4. [render] - SVG, PNG, PDF, JSON and DOT output for positioned layouts
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	Dataset directory or MongoDB
//	         ↓
//	    [io] / [source] (load people)
//	         ↓
//	    [kinship] (graph + validation)
//	         ↓
//	    [layout] (build + position around the focus)
//	         ↓
//	    [graph] (flatten for serialization)
//	         ↓
//	    [render] (SVG/PNG/PDF/JSON/DOT)
//
// # Quick Start
//
//	ds, _ := io.Load(ctx, "data/")
//	l, _ := layout.New(ds.Graph, "I1", layout.WithStyle(layout.StylePedigree))
//	doc, _ := graph.FromLayout(l)
//	svg := sink.RenderSVG(doc, sink.WithCaption())
//
// Name a relationship:
//
//	path, _ := g.ShortestPath("I1", "I7")
//	rel, _ := relate.Translate(g, path) // "Ann Ash is the niece of Bob Ash"
//
// # Supporting Packages
//
// [cache] - File, Redis and null caches for layouts and artifacts, keyed by
// dataset hash and options.
//
// [session] - Navigator sessions (focus history) persisted between runs.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// [kinship]: https://pkg.go.dev/github.com/kinview/kinview/pkg/kinship
// [layout]: https://pkg.go.dev/github.com/kinview/kinview/pkg/layout
// [relate]: https://pkg.go.dev/github.com/kinview/kinview/pkg/relate
// [render]: https://pkg.go.dev/github.com/kinview/kinview/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/kinview/kinview/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/kinview/kinview/pkg/io
// [source]: https://pkg.go.dev/github.com/kinview/kinview/pkg/source
// [graph]: https://pkg.go.dev/github.com/kinview/kinview/pkg/graph
// [cache]: https://pkg.go.dev/github.com/kinview/kinview/pkg/cache
// [session]: https://pkg.go.dev/github.com/kinview/kinview/pkg/session
// [errors]: https://pkg.go.dev/github.com/kinview/kinview/pkg/errors
// [observability]: https://pkg.go.dev/github.com/kinview/kinview/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/kinview/kinview/pkg/buildinfo
package pkg

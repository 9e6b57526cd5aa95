// Package pkg provides the libraries behind rclayout.
//
// # Overview
//
// rclayout turns legacy dialog resources, where every control sits at an
// absolute position, into nested sizer layouts that reproduce the original
// arrangement. The pkg directory is organized into four areas:
//
//  1. [core] - The layout engine (dialog model, container tree, assembly)
//  2. [form] - Serialization types for form documents and layouts
//  3. [pipeline] - Orchestration (load → layout → render) with caching
//  4. Infrastructure: [cache], [store], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	forms document (JSON / TOML / YAML)
//	         ↓
//	    [form] package (decode + schema validation)
//	         ↓
//	    [core/dialog] package (controls, geometry, id mapping)
//	         ↓
//	    [core/layout] package (sort, classify, assemble)
//	         ↓
//	    [core/sizer] container tree
//	         ↓
//	    [render/diagram] DOT / SVG / PNG / text, or layout JSON
//
// # Quick Start
//
// Lay out every form of a document:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/rclayout/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Input:   "dialogs.json",
//	    Formats: []string{"json", "text"},
//	})
//
// Or drive the engine directly:
//
//	f := dialog.NewForm("IDD_ABOUT", dialog.FormDialog, rect, controls...)
//	tree := layout.Build(f)
//
// # Main Packages
//
// [core/dialog] - Control descriptors, logical and device rectangles, the
// geometry comparisons the engine relies on, and resource id conversion.
//
// [core/sizer] - The container tree: an arena of rows, columns, grids,
// group boxes and the standard button row, addressed by handle.
//
// [core/layout] - Sorting, grid classification, group-box expansion,
// standard-button detection and tree assembly.
//
// [form] - Wire types shared by the CLI, the HTTP service, the cache and
// the layout store.
//
// [pipeline] - Concurrent per-form processing with content-addressed
// caching of layouts and rendered artifacts.
//
// [cache] - File, Redis and null cache backends.
//
// [store] - Persisted layouts in memory or MongoDB.
package pkg

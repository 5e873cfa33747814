// Package pkg provides the core libraries for vizboard scene processing.
//
// # Overview
//
// Vizboard turns raw, LLM-generated scene descriptions into render-ready
// whiteboard visualizations. The pkg directory is organized into:
//
//  1. [canvas] - Canvas geometry and the nine-zone grid
//  2. [layout] - Overlap-avoiding coordinate allocation within zones
//  3. [sanitize] - Field coercion and shape/animation repair
//  4. [scene] - Serialization types for processed visualizations
//  5. [pipeline] - Orchestration (sanitize → place → assemble) with caching
//  6. [cache], [store] - Result caching and persistence backends
//  7. [render] - Static SVG previews for debugging placement
//
// # Architecture
//
// The typical data flow:
//
//	Raw LLM scenes (JSON)
//	         ↓
//	pipeline.Runner.Process
//	         ↓ per scene: sanitize fields, allocate coordinates
//	scene.Visualization (shapes with concrete pixels, warnings attached)
//	         ↓
//	API response / Mongo store / SVG preview
//
// Processing is deterministic: identical input bytes produce identical
// output, which is what makes response caching by content hash safe.
package pkg

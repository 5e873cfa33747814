// Package render emits static SVG previews of processed scenes.
//
// Previews are a debugging aid: they show where the coordinate allocator
// placed each shape, with zone boundaries overlaid. They are not the
// production rendering path, which consumes the JSON scene graph directly.
package render

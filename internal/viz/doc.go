// Package viz renders phase portraits in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas with a glyph overlay for markers
//   - [Portrait]: composed phase-plane picture (nullclines, manifolds,
//     fixed points, orbits) with a color legend
//   - Theme selection with built-in color schemes
//
// Curves render as braille polylines; unordered nullcline clouds render as
// single pixels. Fixed points are drawn as glyphs on top of the pixel
// layer: ✕ for saddles, ● for attractors, ○ for repellors and centers.
package viz

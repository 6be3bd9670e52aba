// Package editor implements the interactive editing gestures: drawing
// new overlays and resizing existing ones.
//
// # Gestures
//
// A grid overlay is drawn in three steps. Pointer-down places the grid
// origin, the drag sizes the first cell, and pointer-up commits the
// cell dimensions. Column count, row count, spacing, and padding start
// from the default configuration and are adjusted afterwards. An OCR
// region is a single press-drag-release; the span is normalized so the
// stored origin is always the top-left corner.
//
// All gesture points are image coordinates. Callers working in display
// space convert through geometry.Viewport first.
//
// # Resizing
//
// Resize exposes eight handles: four corners and four edges. The
// behavior depends on the modifier held during the drag:
//
//   - No modifier: the grabbed corner or edge follows the pointer and
//     the opposite side stays fixed.
//   - Ctrl: the rectangle's center stays fixed; both sides of each
//     affected axis move symmetrically.
//   - Shift on a corner: the aspect ratio is preserved, scaling by the
//     dominant outward axis of the drag. Shift on an edge behaves like
//     an unmodified drag.
//
// Results are clamped to a minimum size per axis: 1 pixel for grid
// cells, 10 pixels for OCR regions. Each drag recomputes from the
// rectangle snapshotted at drag start, so intermediate pointer motion
// never accumulates rounding error.
//
// # Session
//
// Session serializes interactions: only one draw or resize can be
// active at a time, and resizing a locked overlay is refused before the
// drag begins.
package editor

// Package overlay defines the overlay data model: grid overlays that
// describe a regular lattice of icon cells, and OCR region overlays
// that mark where page-identifying text lives.
//
// An overlay's config variant must agree with its declared type; JSON
// decoding enforces this strictly, so a grid overlay carrying OCR
// fields fails to parse rather than loading half-formed. The Manager
// owns a set of overlays, generates sequential ids and display names,
// and refuses to remove locked overlays.
package overlay

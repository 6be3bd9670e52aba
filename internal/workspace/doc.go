// Package workspace defines the persistent document model and its
// on-disk store.
//
// A workspace is a directory holding one workspace.json document, a
// screenshots/ directory of numbered PNG captures, and a cropped/
// directory of extraction output. The document records the overlays,
// the screenshots with their overlay bindings, and which screenshot is
// currently selected.
//
// # Validation
//
// Validate runs four ordered steps and stops at the first failing
// step:
//
//  1. Field validation, collecting every field error in one pass
//  2. Referential integrity of overlay bindings
//  3. Existence of the selected screenshot
//  4. Agreement between overlay map keys and overlay ids
//
// The schema version is gated before anything else: only version 2
// documents are read, and there is no migration path.
//
// ValidateForSave additionally checks that every bound overlay fits
// inside its screenshot's resolution. The bounds check is save-time
// only; a document whose screenshots shrank after binding still loads,
// and extraction clips to the image instead.
//
// # Persistence
//
// Store.Save validates, backs up the existing file to
// workspace.json.backup.<YYYYMMDD_HHMMSS>, and only then writes. A
// failed backup aborts the save, so the previous state is never lost
// to a partial write.
package workspace

package crop

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/ironsheep/icon-cropper-mcp/internal/imaging"
	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
	"github.com/ironsheep/icon-cropper-mcp/internal/workspace"
)

// Skip records a screenshot/overlay pair the batch run passed over and
// why. Skips are expected operating conditions, not failures: a batch
// never aborts because one binding is stale.
type Skip struct {
	Screenshot string `json:"screenshot"`
	OverlayID  string `json:"overlay_id,omitempty"`
	Reason     string `json:"reason"`
}

// PairResult is the outcome for one screenshot/overlay pair: the output
// files written (relative to the workspace directory, 1-indexed) and
// per-cell statistics in the same order.
type PairResult struct {
	Screenshot string     `json:"screenshot"`
	OverlayID  string     `json:"overlay_id"`
	Paths      []string   `json:"paths"`
	Cells      []CellStat `json:"cells"`
}

// BatchReport is the full outcome of a batch extraction.
type BatchReport struct {
	Pairs      []PairResult `json:"pairs"`
	Skips      []Skip       `json:"skips"`
	TotalIcons int          `json:"total_icons"`
}

// BatchExtract crops every (screenshot, bound grid overlay) pair of a
// workspace, writing cells to cropped/<screenshot>/<overlayId>/NNN.png
// with 1-indexed three-digit numbers. Screenshots whose file is
// missing, bindings to undefined overlays, and non-grid bindings are
// reported as skips and processing continues. Pairs run strictly
// sequentially in document order.
func BatchExtract(st *workspace.Store, cache *imaging.ImageCache, doc *workspace.Document) (*BatchReport, error) {
	report := &BatchReport{}
	name := doc.WorkspaceName
	workspaceDir := st.Dir(name)

	for _, shot := range doc.Screenshots {
		shotPath := st.ScreenshotPath(name, shot.Filename)
		if _, err := os.Stat(shotPath); err != nil {
			report.Skips = append(report.Skips, Skip{
				Screenshot: shot.Filename,
				Reason:     "screenshot file missing",
			})
			continue
		}

		var img imageOnce
		for _, overlayID := range shot.OverlayBindings {
			o, ok := doc.Overlays[overlayID]
			if !ok {
				report.Skips = append(report.Skips, Skip{
					Screenshot: shot.Filename,
					OverlayID:  overlayID,
					Reason:     "overlay not defined in workspace",
				})
				continue
			}
			if o.Type != overlay.TypeGrid {
				report.Skips = append(report.Skips, Skip{
					Screenshot: shot.Filename,
					OverlayID:  overlayID,
					Reason:     fmt.Sprintf("overlay type %q cannot be cropped", o.Type),
				})
				continue
			}

			src, err := img.load(cache, shotPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", shot.Filename, err)
			}

			cells := Extract(src, *o.Grid)
			outDir := filepath.Join(st.CroppedDir(name), shot.Filename, overlayID)

			pair := PairResult{Screenshot: shot.Filename, OverlayID: overlayID}
			for i, cell := range cells {
				outPath := filepath.Join(outDir, fmt.Sprintf("%03d.png", i+1))
				if err := imaging.SavePNG(cell, outPath); err != nil {
					return nil, fmt.Errorf("failed to write %s: %w", outPath, err)
				}
				rel, err := filepath.Rel(workspaceDir, outPath)
				if err != nil {
					rel = outPath
				}
				pair.Paths = append(pair.Paths, filepath.ToSlash(rel))
				pair.Cells = append(pair.Cells, Analyze(i+1, cell))
			}

			report.Pairs = append(report.Pairs, pair)
			report.TotalIcons += len(cells)
		}
	}
	return report, nil
}

// imageOnce loads a screenshot at most once per batch iteration even
// when several overlays are bound to it.
type imageOnce struct {
	img image.Image
}

func (l *imageOnce) load(cache *imaging.ImageCache, path string) (image.Image, error) {
	if l.img != nil {
		return l.img, nil
	}
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	l.img = img
	return img, nil
}

// BatchStats computes the dry-run report for a document: what a batch
// extraction would produce. Dangling and non-grid bindings are excluded
// from the counts, mirroring the skips a real run would report.
func BatchStats(doc *workspace.Document) *Stats {
	stats := &Stats{TotalScreenshots: len(doc.Screenshots)}
	for _, shot := range doc.Screenshots {
		for _, overlayID := range shot.OverlayBindings {
			o, ok := doc.Overlays[overlayID]
			if !ok || o.Type != overlay.TypeGrid {
				continue
			}
			icons := o.Grid.Rows * o.Grid.Columns
			stats.Breakdown = append(stats.Breakdown, Breakdown{
				Screenshot:  shot.Filename,
				OverlayID:   overlayID,
				OverlayName: o.Name,
				Icons:       icons,
			})
			stats.TotalIcons += icons
			stats.TotalGridBindings++
		}
	}
	return stats
}

// AvailableOverlayIDs returns the sorted overlay ids of a document, for
// error reporting.
func AvailableOverlayIDs(doc *workspace.Document) []string {
	ids := make([]string, 0, len(doc.Overlays))
	for id := range doc.Overlays {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

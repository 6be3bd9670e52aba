package crop

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// blankUniformity is the uniformity above which a cell is reported as
// blank: essentially one flat color, usually an empty grid slot.
const blankUniformity = 0.98

// maxSamples caps how many pixels Analyze inspects per cell.
const maxSamples = 4096

// CellStat summarizes one extracted cell so near-empty slots are
// visible in reports without opening the files.
type CellStat struct {
	Index      int     `json:"index"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	MeanColor  string  `json:"mean_color"`
	Uniformity float64 `json:"uniformity"`
	Blank      bool    `json:"blank"`
}

// Analyze computes the mean color of a cell and how perceptually
// uniform the cell is around it. Uniformity is 1 minus the average Lab
// distance of sampled pixels from the mean color, clamped to [0,1]:
// 1.0 is a flat fill, lower values mean more visual structure.
func Analyze(index int, img image.Image) CellStat {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	stride := 1
	for (w/stride)*(h/stride) > maxSamples {
		stride++
	}

	var sumR, sumG, sumB float64
	var colors []colorful.Color
	for y := b.Min.Y; y < b.Max.Y; y += stride {
		for x := b.Min.X; x < b.Max.X; x += stride {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// Fully transparent pixel; treat as black.
				c = colorful.Color{}
			}
			sumR += c.R
			sumG += c.G
			sumB += c.B
			colors = append(colors, c)
		}
	}

	stat := CellStat{Index: index, Width: w, Height: h, MeanColor: "#000000", Uniformity: 1.0}
	if len(colors) == 0 {
		stat.Blank = true
		return stat
	}

	n := float64(len(colors))
	mean := colorful.Color{R: sumR / n, G: sumG / n, B: sumB / n}
	stat.MeanColor = mean.Clamped().Hex()

	var totalDist float64
	for _, c := range colors {
		totalDist += mean.DistanceLab(c)
	}
	avg := totalDist / n
	uniformity := 1.0 - avg
	if uniformity < 0 {
		uniformity = 0
	}
	stat.Uniformity = uniformity
	stat.Blank = uniformity >= blankUniformity
	return stat
}

// Stats is the dry-run report: how many icons a batch extraction would
// produce, without touching any image files. Counts use the configured
// rows*columns per binding; edge clipping is not simulated.
type Stats struct {
	TotalScreenshots  int         `json:"total_screenshots"`
	TotalGridBindings int         `json:"total_grid_bindings"`
	TotalIcons        int         `json:"total_icons"`
	Breakdown         []Breakdown `json:"breakdown"`
}

// Breakdown is one screenshot/overlay pair in the dry-run report.
type Breakdown struct {
	Screenshot  string `json:"screenshot"`
	OverlayID   string `json:"overlay"`
	OverlayName string `json:"overlay_name"`
	Icons       int    `json:"icons"`
}

// Package detector identifies which page of the source application a
// screenshot shows. It runs Tesseract OCR over a configured detection
// region and matches the recognized text against per-page phrases.
package detector

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"sort"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/icon-cropper-mcp/internal/config"
	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
)

// UnknownPageError reports OCR text that matched none of the configured
// page phrases.
type UnknownPageError struct {
	// Text is the recognized text that failed to match.
	Text string
}

func (e *UnknownPageError) Error() string {
	return fmt.Sprintf("no configured page matches detected text %q", e.Text)
}

// Result holds the outcome of a successful detection.
type Result struct {
	// Page is the matched page key from the configuration.
	Page string `json:"page"`

	// Text is the OCR output the match was made against.
	Text string `json:"text"`
}

// Detector matches screenshots to page types using OCR.
type Detector struct {
	pages         map[string]config.Page
	language      string
	minConfidence float64
}

// New builds a detector from the loaded configuration.
func New(cfg *config.Config) *Detector {
	return &Detector{
		pages:         cfg.Pages,
		language:      cfg.OCR.Language,
		minConfidence: cfg.OCR.ConfidenceThreshold,
	}
}

// DetectPage crops the detection region from img, OCRs it, and matches
// the text against the configured pages. The region comes from an OCR
// overlay and must be placed (nonzero size).
func (d *Detector) DetectPage(img image.Image, region overlay.OCRConfig) (*Result, error) {
	text, err := d.ReadRegion(img, region)
	if err != nil {
		return nil, err
	}

	page, err := d.Match(text)
	if err != nil {
		return nil, err
	}
	return &Result{Page: page, Text: text}, nil
}

// ReadRegion runs OCR over one rectangular region of img and returns
// the recognized text with low-confidence words dropped.
func (d *Detector) ReadRegion(img image.Image, region overlay.OCRConfig) (string, error) {
	if !region.Placed() {
		return "", fmt.Errorf("detection region has no size")
	}

	cropped := imaging.Crop(img, image.Rect(
		region.X, region.Y,
		region.X+region.Width, region.Y+region.Height,
	))

	// Tesseract needs a file path, so the preprocessed crop goes
	// through a temporary PNG.
	tmpFile, err := os.CreateTemp("", "page-detect-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, preprocess(cropped)); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	return d.extractText(tmpPath)
}

// extractText runs Tesseract on an image file. Words below the
// confidence threshold are dropped; if word-level boxes are
// unavailable the full text is used unfiltered.
func (d *Detector) extractText(imagePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(d.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		text, terr := client.Text()
		if terr != nil {
			return "", fmt.Errorf("OCR failed: %w", terr)
		}
		return text, nil
	}

	var words []string
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		if float64(box.Confidence)/100.0 < d.minConfidence {
			continue
		}
		words = append(words, box.Word)
	}
	return strings.Join(words, " "), nil
}

// Match finds the configured page whose primary phrase or any
// alternative appears in text, case-insensitively. Pages are checked
// in sorted key order so ties resolve deterministically.
func (d *Detector) Match(text string) (string, error) {
	lowered := strings.ToLower(text)

	keys := make([]string, 0, len(d.pages))
	for key := range d.pages {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		page := d.pages[key]
		for _, phrase := range append([]string{page.Match}, page.Alternatives...) {
			if phrase == "" {
				continue
			}
			if strings.Contains(lowered, strings.ToLower(phrase)) {
				return key, nil
			}
		}
	}
	return "", &UnknownPageError{Text: text}
}

// preprocess improves OCR accuracy on small UI text: grayscale then a
// 2x linear upscale.
func preprocess(img image.Image) image.Image {
	gray := effect.Grayscale(img)
	b := gray.Bounds()
	return transform.Resize(gray, b.Dx()*2, b.Dy()*2, transform.Linear)
}

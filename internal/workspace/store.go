package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/icon-cropper-mcp/internal/imaging"
	"github.com/ironsheep/icon-cropper-mcp/internal/overlay"
)

// Store manages a root directory of workspaces. Each workspace is a
// directory <root>/<name>/ holding workspace.json, a screenshots/
// directory of numbered PNGs, and a cropped/ directory for extraction
// output.
//
// Every save validates the document first, then backs up the existing
// workspace.json, then writes. A failed validation or backup leaves the
// file untouched.
type Store struct {
	root string
	now  func() time.Time
}

// NewStore returns a store rooted at the given directory. The directory
// is created lazily by the first Create.
func NewStore(root string) *Store {
	return &Store{root: root, now: time.Now}
}

// Dir returns the directory of one workspace.
func (s *Store) Dir(name string) string {
	return filepath.Join(s.root, name)
}

// DocumentPath returns the path of a workspace's metadata file.
func (s *Store) DocumentPath(name string) string {
	return filepath.Join(s.root, name, "workspace.json")
}

// ScreenshotsDir returns a workspace's screenshot directory.
func (s *Store) ScreenshotsDir(name string) string {
	return filepath.Join(s.root, name, "screenshots")
}

// CroppedDir returns a workspace's extraction output directory.
func (s *Store) CroppedDir(name string) string {
	return filepath.Join(s.root, name, "cropped")
}

// ScreenshotPath returns the full path of one screenshot file.
func (s *Store) ScreenshotPath(name, filename string) string {
	return filepath.Join(s.root, name, "screenshots", filename)
}

// Exists reports whether a workspace directory exists.
func (s *Store) Exists(name string) bool {
	info, err := os.Stat(s.Dir(name))
	return err == nil && info.IsDir()
}

// List returns the names of all workspaces, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace root: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Create sets up a workspace directory with its subdirectories and an
// empty metadata file. Creating an existing workspace is not an error;
// the existing document is loaded and returned.
func (s *Store) Create(name string) (*Document, error) {
	if err := checkWorkspaceName(name); err != nil {
		return nil, err
	}
	for _, dir := range []string{s.Dir(name), s.ScreenshotsDir(name), s.CroppedDir(name)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create workspace directory: %w", err)
		}
	}

	if _, err := os.Stat(s.DocumentPath(name)); err == nil {
		return s.Load(name)
	}

	doc := NewDocument(name, s.now())
	if err := s.Save(name, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Load reads and validates a workspace document. Documents that fail
// the schema gate or any validation step never reach the caller.
func (s *Store) Load(name string) (*Document, error) {
	data, err := os.ReadFile(s.DocumentPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace %q: %w", name, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid workspace file for %q: %w", name, err)
	}
	if doc.Overlays == nil {
		doc.Overlays = make(map[string]*overlay.Overlay)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save validates the document, backs up any existing metadata file,
// then writes. The backup is named
// workspace.json.backup.<YYYYMMDD_HHMMSS> after the save's wall-clock
// time; a backup failure aborts the save with the original file intact.
func (s *Store) Save(name string, doc *Document) error {
	if err := ValidateForSave(doc); err != nil {
		return err
	}

	path := s.DocumentPath(name)
	if _, err := os.Stat(path); err == nil {
		if err := s.backup(path); err != nil {
			return fmt.Errorf("backup failed, save aborted: %w", err)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode workspace %q: %w", name, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write workspace %q: %w", name, err)
	}
	return nil
}

func (s *Store) backup(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	stamp := s.now().Format("20060102_150405")
	return os.WriteFile(fmt.Sprintf("%s.backup.%s", path, stamp), data, 0o644)
}

// ImportScreenshot copies a PNG file into the workspace under the next
// free number (001.png, 002.png, ...), records its metadata, and
// selects it. It returns the updated document and the assigned
// filename.
func (s *Store) ImportScreenshot(name, srcPath string) (*Document, string, error) {
	if !strings.EqualFold(filepath.Ext(srcPath), ".png") {
		return nil, "", fmt.Errorf("screenshot must be a PNG file, got %q", filepath.Base(srcPath))
	}

	doc, err := s.Load(name)
	if err != nil {
		return nil, "", err
	}

	width, height, err := imaging.ReadDimensions(srcPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read screenshot: %w", err)
	}

	data, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read screenshot: %w", err)
	}

	filename := fmt.Sprintf("%03d.png", s.nextScreenshotNumber(name))
	if err := os.WriteFile(s.ScreenshotPath(name, filename), data, 0o644); err != nil {
		return nil, "", fmt.Errorf("failed to store screenshot: %w", err)
	}

	doc.Screenshots = append(doc.Screenshots, &Screenshot{
		Filename:        filename,
		CapturedAt:      s.now().Format(timestampLayout),
		Resolution:      [2]int{width, height},
		OverlayBindings: []string{},
	})
	doc.Select(filename)

	if err := s.Save(name, doc); err != nil {
		return nil, "", err
	}
	return doc, filename, nil
}

// nextScreenshotNumber continues from the highest numeric stem among
// existing files, so deleting screenshots never renumbers survivors.
func (s *Store) nextScreenshotNumber(name string) int {
	maxN := 0
	entries, err := os.ReadDir(s.ScreenshotsDir(name))
	if err != nil {
		return 1
	}
	for _, e := range entries {
		stem := strings.TrimSuffix(e.Name(), ".png")
		if stem == e.Name() {
			continue
		}
		if n, err := strconv.Atoi(stem); err == nil && n > maxN {
			maxN = n
		}
	}
	return maxN + 1
}

// DeleteScreenshot removes a screenshot's file and metadata entry. If
// it was selected, the last remaining screenshot becomes selected, or
// the selection clears when none remain.
func (s *Store) DeleteScreenshot(name, filename string) (*Document, error) {
	doc, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	if _, ok := doc.Screenshot(filename); !ok {
		return nil, fmt.Errorf("screenshot %q not found in workspace %q", filename, name)
	}

	if err := os.Remove(s.ScreenshotPath(name, filename)); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to delete screenshot file: %w", err)
	}

	kept := doc.Screenshots[:0]
	for _, sc := range doc.Screenshots {
		if sc.Filename != filename {
			kept = append(kept, sc)
		}
	}
	doc.Screenshots = kept

	if doc.Selected() == filename {
		if len(doc.Screenshots) > 0 {
			doc.Select(doc.Screenshots[len(doc.Screenshots)-1].Filename)
		} else {
			doc.Select("")
		}
	}

	if err := s.Save(name, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetSelected marks a screenshot as the selected one and saves.
func (s *Store) SetSelected(name, filename string) (*Document, error) {
	doc, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	doc.Select(filename)
	if err := s.Save(name, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetBindings replaces the overlay bindings of one screenshot and
// saves. Binding an unknown overlay id fails validation during save.
func (s *Store) SetBindings(name, filename string, overlayIDs []string) (*Document, error) {
	doc, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	sc, ok := doc.Screenshot(filename)
	if !ok {
		return nil, fmt.Errorf("screenshot %q not found in workspace %q", filename, name)
	}
	if overlayIDs == nil {
		overlayIDs = []string{}
	}
	sc.OverlayBindings = overlayIDs
	if err := s.Save(name, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func checkWorkspaceName(name string) error {
	if name == "" {
		return fmt.Errorf("workspace name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("workspace name %q must be a plain directory name", name)
	}
	return nil
}

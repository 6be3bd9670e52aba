package overlay

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LockedError is returned when an operation would delete or modify a
// locked overlay. The overlay is left untouched.
type LockedError struct {
	ID string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("overlay %q is locked", e.ID)
}

// NotFoundError is returned when an overlay id does not resolve.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("overlay %q not found", e.ID)
}

// Manager owns the workspace-level overlay collection: lookup, add and
// remove with lock enforcement, and id/name generation. It is not safe
// for concurrent use; the editing flow is single-threaded.
type Manager struct {
	overlays map[string]*Overlay
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{overlays: make(map[string]*Overlay)}
}

// ManagerFromMap builds a manager over an existing overlay map, such as
// one decoded from a workspace document. The map is used directly, not
// copied, so document and manager stay in sync.
func ManagerFromMap(m map[string]*Overlay) *Manager {
	if m == nil {
		m = make(map[string]*Overlay)
	}
	return &Manager{overlays: m}
}

// Map exposes the underlying overlay map for persistence.
func (m *Manager) Map() map[string]*Overlay {
	return m.overlays
}

// Add inserts an overlay. The id must be unused.
func (m *Manager) Add(o *Overlay) error {
	if o.ID == "" {
		return fmt.Errorf("overlay id must not be empty")
	}
	if _, exists := m.overlays[o.ID]; exists {
		return fmt.Errorf("overlay %q already exists", o.ID)
	}
	m.overlays[o.ID] = o
	return nil
}

// Get returns the overlay with the given id.
func (m *Manager) Get(id string) (*Overlay, bool) {
	o, ok := m.overlays[id]
	return o, ok
}

// Remove deletes an overlay. Removing a locked overlay fails with
// *LockedError and leaves the collection unchanged; the overlay must
// be unlocked first.
func (m *Manager) Remove(id string) error {
	o, ok := m.overlays[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	if o.Locked {
		return &LockedError{ID: id}
	}
	delete(m.overlays, id)
	return nil
}

// ByType returns the overlays of one type, ordered by id.
func (m *Manager) ByType(t Type) []*Overlay {
	var out []*Overlay
	for _, o := range m.overlays {
		if o.Type == t {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// All returns every overlay, ordered by id.
func (m *Manager) All() []*Overlay {
	out := make([]*Overlay, 0, len(m.overlays))
	for _, o := range m.overlays {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of overlays of one type.
func (m *Manager) Count(t Type) int {
	n := 0
	for _, o := range m.overlays {
		if o.Type == t {
			n++
		}
	}
	return n
}

// GenerateID returns the next free id of the form "{type}_{n}". The
// counter continues from the highest numeric suffix among existing ids
// of that type, so deleting an overlay never causes id reuse unless it
// held the maximum.
func (m *Manager) GenerateID(t Type) string {
	maxN := 0
	prefix := string(t) + "_"
	for id := range m.overlays {
		rest, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > maxN {
			maxN = n
		}
	}
	return fmt.Sprintf("%s_%d", t, maxN+1)
}

// GenerateName returns a display name for a new overlay of the given
// type, numbered after the current count: "Grid 3", "OCR Region 1".
func (m *Manager) GenerateName(t Type) string {
	switch t {
	case TypeOCR:
		return fmt.Sprintf("OCR Region %d", m.Count(TypeOCR)+1)
	default:
		return fmt.Sprintf("Grid %d", m.Count(TypeGrid)+1)
	}
}

// ToggleLock flips the locked flag and returns the new state.
func (m *Manager) ToggleLock(id string) (bool, error) {
	o, ok := m.overlays[id]
	if !ok {
		return false, &NotFoundError{ID: id}
	}
	o.Locked = !o.Locked
	return o.Locked, nil
}

// ToggleVisibility flips the visible flag and returns the new state.
func (m *Manager) ToggleVisibility(id string) (bool, error) {
	o, ok := m.overlays[id]
	if !ok {
		return false, &NotFoundError{ID: id}
	}
	o.Visible = !o.Visible
	return o.Visible, nil
}

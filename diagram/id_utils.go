package diagram

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.New().String()
}

// EnsureAnchorIDs assigns ids to anchors that were written without one and
// replaces duplicates within a connector.
func EnsureAnchorIDs(m *Model) {
	if m == nil {
		return
	}
	for vi := range m.Views {
		for ci := range m.Views[vi].Connectors {
			seen := make(map[string]bool)
			anchors := m.Views[vi].Connectors[ci].Anchors
			for ai := range anchors {
				if anchors[ai].ID == "" || seen[anchors[ai].ID] {
					anchors[ai].ID = NewID()
				}
				seen[anchors[ai].ID] = true
			}
		}
	}
}

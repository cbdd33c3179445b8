package pressedkeys

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/guettli/eventqueue/pkg/types"
)

// Manager is the set of momentary switch events currently held down.
// It is safe for concurrent use.
type Manager struct {
	entries mapset.Set[types.MomentarySwitchEvent]
}

func New() *Manager {
	return &Manager{entries: mapset.NewSet[types.MomentarySwitchEvent]()}
}

func (m *Manager) Insert(e types.MomentarySwitchEvent) {
	m.entries.Add(e)
}

func (m *Manager) Erase(e types.MomentarySwitchEvent) {
	m.entries.Remove(e)
}

func (m *Manager) Empty() bool {
	return m.entries.Cardinality() == 0
}

func (m *Manager) Len() int {
	return m.entries.Cardinality()
}

func (m *Manager) Contains(e types.MomentarySwitchEvent) bool {
	return m.entries.Contains(e)
}

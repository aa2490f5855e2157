package browser

import (
	"sync"

	"neo-background/internal/dom"
	"neo-background/internal/logging"
)

// Mounter inserts one element per page node, however many times the node
// is reported. Nodes are identified by ids the Mounter hands out.
type Mounter struct {
	registry *dom.Registry
	tag      string

	mu      sync.Mutex
	lastID  int
	mounted map[int]dom.Element
}

// NewMounter mounts elements named tag, created from registry.
func NewMounter(registry *dom.Registry, tag string) *Mounter {
	return &Mounter{
		registry: registry,
		tag:      tag,
		mounted:  make(map[int]dom.Element),
	}
}

// Tag returns the element name being mounted.
func (m *Mounter) Tag() string {
	return m.tag
}

// NextID returns an id no node has been given yet. Ids start at 1.
func (m *Mounter) NextID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastID++
	return m.lastID
}

// Mount connects the node with the given id to the host newHost returns.
// A node that is already mounted keeps its element and newHost is not
// called.
func (m *Mounter) Mount(id int, newHost func() dom.Host) (dom.Element, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.mounted[id]; ok {
		return el, nil
	}

	el, err := dom.NewDocument(m.registry, newHost()).Insert(m.tag)
	if err != nil {
		return nil, err
	}
	m.mounted[id] = el
	logging.Logger().Debug("browser: mounted", "tag", m.tag, "id", id)
	return el, nil
}

// Mounted returns how many nodes have an element.
func (m *Mounter) Mounted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.mounted)
}

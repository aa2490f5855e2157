package dom

import "neo-background/internal/logging"

// Document connects elements created from a registry to a host.
type Document struct {
	registry *Registry
	host     Host
	elements []Element
}

// NewDocument returns a document whose elements attach to host.
func NewDocument(registry *Registry, host Host) *Document {
	return &Document{registry: registry, host: host}
}

// Insert creates an element for tag and connects it to the host.
func (d *Document) Insert(tag string) (Element, error) {
	el, err := d.registry.Create(tag)
	if err != nil {
		return nil, err
	}

	d.elements = append(d.elements, el)
	logging.Logger().Debug("dom: element connected", "tag", tag, "count", len(d.elements))
	el.Connected(d.host)
	return el, nil
}

// Elements returns the inserted elements in insertion order.
func (d *Document) Elements() []Element {
	return d.elements
}

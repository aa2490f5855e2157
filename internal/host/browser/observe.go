//go:build js && wasm

package browser

import (
	"strings"
	"syscall/js"

	"neo-background/internal/dom"
	"neo-background/internal/logging"
)

// idProperty stores a node's Mounter id on the DOM node itself.
const idProperty = "__neoBackgroundId"

const elementNode = 1

// Observe mounts every node named m.Tag() already in the page and every
// one inserted later. The returned func disconnects the observer.
func Observe(m *Mounter) (stop func()) {
	root := js.Global().Get("document").Get("documentElement")

	mount := func(node js.Value) {
		id := node.Get(idProperty)
		if id.IsUndefined() {
			id = js.ValueOf(m.NextID())
			node.Set(idProperty, id)
		}
		if _, err := m.Mount(id.Int(), func() dom.Host { return New(node) }); err != nil {
			logging.Logger().Warn("browser: mount failed", "tag", m.Tag(), "error", err)
		}
	}

	// scan mounts node and every matching descendant
	scan := func(node js.Value) {
		if node.Get("nodeType").Int() != elementNode {
			return
		}
		if strings.EqualFold(node.Get("localName").String(), m.Tag()) {
			mount(node)
		}
		found := node.Call("getElementsByTagName", m.Tag())
		for i := 0; i < found.Length(); i++ {
			mount(found.Index(i))
		}
	}

	scan(root)

	onMutation := js.FuncOf(func(_ js.Value, args []js.Value) any {
		records := args[0]
		for i := 0; i < records.Length(); i++ {
			added := records.Index(i).Get("addedNodes")
			for j := 0; j < added.Length(); j++ {
				scan(added.Index(j))
			}
		}
		return nil
	})

	observer := js.Global().Get("MutationObserver").New(onMutation)
	observer.Call("observe", root, map[string]any{"childList": true, "subtree": true})

	return func() {
		observer.Call("disconnect")
		onMutation.Release()
	}
}

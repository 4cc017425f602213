package workspace

import "studyfortress/pkg/viewport"

type Node struct {
	ID    string
	Label string
	Pos   viewport.Point
	Color string
}

type Connection struct {
	ID    string
	From  string
	To    string
	Label string
	Color string
}

const (
	defaultNodeLabel = "New Node"
	defaultNodeColor = "bg-gray-400"
	defaultConnColor = "stroke-gray-400"
)

// NodeUpdate changes the non-nil fields of a node.
type NodeUpdate struct {
	Label *string
	Color *string
	Pos   *viewport.Point
}

func (w *Workspace) AddNode(pos viewport.Point) Node {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := Node{ID: newID("node"), Label: defaultNodeLabel, Pos: pos, Color: defaultNodeColor}
	w.nodes = append(w.nodes, n)
	return n
}

func (w *Workspace) UpdateNode(id string, u NodeUpdate) (Node, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.nodeIndexLocked(id)
	if i < 0 {
		return Node{}, ErrNodeNotFound
	}
	n := &w.nodes[i]
	if u.Label != nil {
		n.Label = *u.Label
	}
	if u.Color != nil && *u.Color != "" {
		n.Color = *u.Color
	}
	if u.Pos != nil {
		n.Pos = *u.Pos
	}
	return *n, nil
}

// DeleteNode removes a node and every connection touching it.
func (w *Workspace) DeleteNode(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := w.nodeIndexLocked(id)
	if i < 0 {
		return ErrNodeNotFound
	}
	w.nodes = append(w.nodes[:i], w.nodes[i+1:]...)
	kept := w.conns[:0]
	for _, c := range w.conns {
		if c.From == id || c.To == id {
			continue
		}
		kept = append(kept, c)
	}
	w.conns = kept
	return nil
}

// Connect links two existing, distinct nodes.
func (w *Workspace) Connect(from, to string) (Connection, error) {
	if from == to {
		return Connection{}, ErrBadConnection
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.nodeIndexLocked(from) < 0 || w.nodeIndexLocked(to) < 0 {
		return Connection{}, ErrNodeNotFound
	}
	c := Connection{ID: newID("conn"), From: from, To: to, Color: defaultConnColor}
	w.conns = append(w.conns, c)
	return c, nil
}

func (w *Workspace) nodeIndexLocked(id string) int {
	for i := range w.nodes {
		if w.nodes[i].ID == id {
			return i
		}
	}
	return -1
}

package folders

import (
	"fmt"
	"strings"
)

// Line is one rendered row of the tree
type Line struct {
	Prefix string // tree connectors, e.g. "│   └── "
	Node   *Node
}

// Lines flattens the tree into display rows with box-drawing connectors
func (t *Tree) Lines() []Line {
	var out []Line
	var visit func(ids []int, indent string, top bool)
	visit = func(ids []int, indent string, top bool) {
		for i, id := range ids {
			n := t.nodes[id]
			last := i == len(ids)-1

			prefix, next := "", ""
			if !top {
				if last {
					prefix, next = indent+"└── ", indent+"    "
				} else {
					prefix, next = indent+"├── ", indent+"│   "
				}
			}
			out = append(out, Line{Prefix: prefix, Node: n})
			visit(n.Children, next, false)
		}
	}
	visit(t.roots, "", true)
	return out
}

// Render returns the tree as plain text, one folder per line with its note counts
func (t *Tree) Render() string {
	var b strings.Builder
	for _, line := range t.Lines() {
		b.WriteString(line.Prefix)
		b.WriteString(line.Node.Folder.Name)
		b.WriteString(" ")
		b.WriteString(Counts(line.Node))
		b.WriteString("\n")
	}
	if t.unfiled > 0 {
		fmt.Fprintf(&b, "(unfiled) (%d)\n", t.unfiled)
	}
	return b.String()
}

// Counts formats a node's note counts: "(3)" or "(1/4)" when descendants hold notes
func Counts(n *Node) string {
	if n.Total == n.Notes {
		return fmt.Sprintf("(%d)", n.Notes)
	}
	return fmt.Sprintf("(%d/%d)", n.Notes, n.Total)
}

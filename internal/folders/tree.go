// Package folders builds the notes folder hierarchy.
//
// Nodes live in a flat arena indexed by folder id; parent and child links are ids,
// never pointers, so a malformed server response (missing parents, cycles) cannot
// make traversal loop.
package folders

import (
	"cmp"
	"slices"
	"strings"

	"github.com/thenoetrevino/kodo/internal/models"
)

// Node is one folder in the tree
type Node struct {
	Folder   *models.Folder
	Parent   int // 0 for roots
	Children []int
	Depth    int

	// Notes filed directly in this folder
	Notes int

	// Notes in this folder and every descendant
	Total int
}

// Tree is a parent-indexed arena of folders
type Tree struct {
	nodes    map[int]*Node
	roots    []int
	unfiled  int
	detached []int
}

// Build assembles the tree from the flat folder and note lists.
//
// Folders whose parent is unknown are placed at the root. Folders caught in a
// parent cycle are detached at the first member reached and become roots too.
// Siblings are sorted by name, then id. Notes without a known folder are counted
// as unfiled.
func Build(folders []*models.Folder, notes []*models.Note) *Tree {
	t := &Tree{nodes: make(map[int]*Node, len(folders))}
	for _, f := range folders {
		if f == nil {
			continue
		}
		if _, dup := t.nodes[f.ID]; dup {
			continue
		}
		c := *f
		t.nodes[f.ID] = &Node{Folder: &c}
	}

	for _, id := range t.sortedIDs() {
		n := t.nodes[id]
		if p := n.Folder.ParentID; p != nil && *p != id {
			if parent, ok := t.nodes[*p]; ok {
				n.Parent = *p
				parent.Children = append(parent.Children, id)
				continue
			}
		}
		t.roots = append(t.roots, id)
	}

	t.breakCycles()
	t.sortSiblings(t.roots)
	for _, n := range t.nodes {
		t.sortSiblings(n.Children)
	}

	for _, note := range notes {
		if note == nil {
			continue
		}
		if note.FolderID != nil {
			if n, ok := t.nodes[*note.FolderID]; ok {
				n.Notes++
				continue
			}
		}
		t.unfiled++
	}

	for _, id := range t.roots {
		t.settle(id, 0)
	}
	return t
}

// breakCycles promotes one member of every cycle that no root can reach
func (t *Tree) breakCycles() {
	reached := make(map[int]bool, len(t.nodes))
	var mark func(id int)
	mark = func(id int) {
		if reached[id] {
			return
		}
		reached[id] = true
		for _, child := range t.nodes[id].Children {
			mark(child)
		}
	}
	for _, id := range t.roots {
		mark(id)
	}

	for _, id := range t.sortedIDs() {
		if reached[id] {
			continue
		}
		n := t.nodes[id]
		parent := t.nodes[n.Parent]
		parent.Children = slices.DeleteFunc(parent.Children, func(c int) bool { return c == id })
		n.Parent = 0
		t.roots = append(t.roots, id)
		t.detached = append(t.detached, id)
		mark(id)
	}
}

// settle fills Depth and Total below id
func (t *Tree) settle(id, depth int) int {
	n := t.nodes[id]
	n.Depth = depth
	n.Total = n.Notes
	for _, child := range n.Children {
		n.Total += t.settle(child, depth+1)
	}
	return n.Total
}

func (t *Tree) sortedIDs() []int {
	ids := make([]int, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (t *Tree) sortSiblings(ids []int) {
	slices.SortFunc(ids, func(a, b int) int {
		na, nb := t.nodes[a].Folder.Name, t.nodes[b].Folder.Name
		if c := cmp.Compare(strings.ToLower(na), strings.ToLower(nb)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}

// Roots returns the top-level folder ids in display order
func (t *Tree) Roots() []int {
	return slices.Clone(t.roots)
}

// Node returns the node for id
func (t *Tree) Node(id int) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of folders
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Unfiled returns the number of notes outside any known folder
func (t *Tree) Unfiled() int {
	return t.unfiled
}

// Detached returns folders that were cut out of a parent cycle
func (t *Tree) Detached() []int {
	return slices.Clone(t.detached)
}

// Walk visits every folder depth first in display order. Returning false from fn
// skips the folder's children.
func (t *Tree) Walk(fn func(n *Node) bool) {
	var visit func(ids []int)
	visit = func(ids []int) {
		for _, id := range ids {
			n := t.nodes[id]
			if fn(n) {
				visit(n.Children)
			}
		}
	}
	visit(t.roots)
}

// Descendants returns every folder below id, depth first
func (t *Tree) Descendants(id int) []int {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	var out []int
	stack := slices.Clone(n.Children)
	slices.Reverse(stack)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		children := slices.Clone(t.nodes[cur].Children)
		slices.Reverse(children)
		stack = append(stack, children...)
	}
	return out
}

// Path returns the folder names from the root down to id
func (t *Tree) Path(id int) []string {
	var path []string
	for cur, ok := t.nodes[id]; ok; cur, ok = t.nodes[cur.Parent] {
		path = append(path, cur.Folder.Name)
		if cur.Parent == 0 {
			break
		}
	}
	slices.Reverse(path)
	return path
}

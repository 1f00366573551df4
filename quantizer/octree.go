// Package quantizer implements adaptive octree colour quantization.
//
// Colours are bucketed by successive bit-planes of their channels:
// at depth d the (7-d)-th most significant bit of each channel forms
// a 0-7 octant index selecting the child to descend into. While
// pixels are inserted, the tree keeps its live leaf count within a
// fixed budget by repeatedly merging the children of a deep branch
// into the branch itself.
package quantizer

import (
	"cmp"
	"slices"

	"github.com/imagepalette/imagepalette/colour"
)

const (
	// maxDepth is the depth at which nodes are always leaves: after
	// seven levels every bit of each 8-bit channel has been consumed.
	maxDepth = 7

	noChild = int32(-1)
)

// node is a single tree vertex stored in the arena. A node is either
// an accumulating leaf (sums and count meaningful, no children) or an
// internal branch (children meaningful, sums untouched until a merge
// converts it to a leaf). The transition branch -> leaf is one-way.
type node struct {
	isLeaf   bool
	sumR     uint64
	sumG     uint64
	sumB     uint64
	pixels   int
	children [8]int32
}

// Tree is an octree over an arena of nodes. Child links and the
// per-level reduction registries are arena indices, so no node holds
// a pointer into the slice and growth never invalidates a link.
type Tree struct {
	nodes []node

	// reducible holds, per creation depth, the branch nodes that are
	// candidates for reduction. Depth maxDepth nodes are leaves and
	// are never registered; index 0 stays unused because the root is
	// created outside createNode.
	reducible [maxDepth + 1][]int32

	leaves int
}

// NewTree returns a tree containing only a childless branch root.
func NewTree() *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, newNode())
	return t
}

func newNode() node {
	return node{children: [8]int32{
		noChild, noChild, noChild, noChild,
		noChild, noChild, noChild, noChild,
	}}
}

// Leaves returns the number of live leaf nodes.
func (t *Tree) Leaves() int {
	return t.leaves
}

// octant derives the 0-7 child index for a colour at the given depth:
// red contributes the high bit, green the middle, blue the low bit.
func octant(c colour.RGB, depth int) int {
	shift := uint(maxDepth - depth)
	r := (c.R >> shift) & 1
	g := (c.G >> shift) & 1
	b := (c.B >> shift) & 1
	return int(r<<2 | g<<1 | b)
}

// Insert descends from the root and folds the colour into the leaf
// that terminates the descent. Reaching a node that an earlier
// reduction promoted to a leaf stops the descent early; otherwise
// missing children are created on the way down and the colour lands
// in a depth-7 leaf. Insert always succeeds.
func (t *Tree) Insert(c colour.RGB) {
	idx := int32(0)
	for depth := 0; ; depth++ {
		if t.nodes[idx].isLeaf {
			n := &t.nodes[idx]
			n.pixels++
			n.sumR += uint64(c.R)
			n.sumG += uint64(c.G)
			n.sumB += uint64(c.B)
			return
		}

		oct := octant(c, depth)
		if t.nodes[idx].children[oct] == noChild {
			child := t.createNode(depth + 1)
			t.nodes[idx].children[oct] = child
		}
		idx = t.nodes[idx].children[oct]
	}
}

// createNode allocates an arena slot for a node at the given depth.
// Depth-7 nodes are marked leaf immediately; shallower nodes are
// registered as reduction candidates at their depth, and that level
// is re-sorted ascending by pixel count. The re-sort happens only on
// registration, never when a registered node's count later changes,
// so reduction pops an approximate rather than exact minimum. That
// staleness is part of the algorithm's observable behaviour: it
// affects which colours survive.
func (t *Tree) createNode(depth int) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, newNode())

	if depth == maxDepth {
		t.nodes[idx].isLeaf = true
		t.leaves++
		return idx
	}

	t.reducible[depth] = append(t.reducible[depth], idx)
	slices.SortStableFunc(t.reducible[depth], func(a, b int32) int {
		return cmp.Compare(t.nodes[a].pixels, t.nodes[b].pixels)
	})
	return idx
}

// Reduce merges the children of one branch into the branch itself,
// converting it to a leaf. The candidate is taken from the deepest
// nonempty registry level (6 down to 0), popping the last element of
// that level's collection. Every absorbed child is a leaf, since any
// deeper branch would have kept a deeper registry level nonempty.
// Reduce reports whether a merge happened; false means no candidate
// exists anywhere and the tree cannot shrink further.
func (t *Tree) Reduce() bool {
	level := maxDepth - 1
	for level >= 0 && len(t.reducible[level]) == 0 {
		level--
	}
	if level < 0 {
		return false
	}

	cands := t.reducible[level]
	idx := cands[len(cands)-1]
	t.reducible[level] = cands[:len(cands)-1]

	var sumR, sumG, sumB uint64
	pixels := 0
	for _, ci := range t.nodes[idx].children {
		if ci == noChild {
			continue
		}
		child := &t.nodes[ci]
		sumR += child.sumR
		sumG += child.sumG
		sumB += child.sumB
		pixels += child.pixels
		t.leaves--
	}

	n := &t.nodes[idx]
	n.isLeaf = true
	n.sumR = sumR
	n.sumG = sumG
	n.sumB = sumB
	n.pixels = pixels
	n.children = newNode().children
	t.leaves++
	return true
}

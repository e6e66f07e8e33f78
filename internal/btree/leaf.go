// Package btree interprets a raw page buffer as a B-tree node: a small
// header followed by an array of fixed-size cells. The write path only
// ever produces leaf nodes (see internal/table); the internal-node
// accessors here exist to back a read-only debug inspector and are
// otherwise not reachable from Insert/Select.
package btree

import (
	"encoding/binary"

	"minidb/internal/layout"
)

// NodeKind classifies what a page currently holds.
type NodeKind uint8

const (
	NodeKindInternal NodeKind = iota
	NodeKindLeaf
)

// Kind reads the node-type byte common to every node.
func Kind(node []byte) NodeKind {
	return NodeKind(node[layout.NodeTypeOffset])
}

// IsRoot reports the is-root flag common to every node.
func IsRoot(node []byte) bool {
	return node[layout.IsRootOffset] != 0
}

// SetRoot sets the is-root flag common to every node.
func SetRoot(node []byte, isRoot bool) {
	if isRoot {
		node[layout.IsRootOffset] = 1
	} else {
		node[layout.IsRootOffset] = 0
	}
}

// ResetNumCells writes 0 at the leaf's num-cells offset, marking it empty.
func ResetNumCells(node []byte) {
	binary.LittleEndian.PutUint32(node[layout.LeafNodeNumCellsOffset:], 0)
}

// NumCells reads the leaf's num-cells field.
func NumCells(node []byte) uint32 {
	return binary.LittleEndian.Uint32(node[layout.LeafNodeNumCellsOffset:])
}

// SetNumCells writes the leaf's num-cells field.
func SetNumCells(node []byte, n uint32) {
	binary.LittleEndian.PutUint32(node[layout.LeafNodeNumCellsOffset:], n)
}

// Cell returns the mutable cell slice for cell i. The caller is responsible
// for i < layout.LeafNodeMaxCells; there is no bounds checking here.
func Cell(node []byte, i uint32) []byte {
	offset := layout.LeafNodeHeaderSize + i*layout.LeafNodeCellSize
	return node[offset : offset+layout.LeafNodeCellSize]
}

// Key reads the key of cell i.
func Key(node []byte, i uint32) uint32 {
	return binary.LittleEndian.Uint32(Cell(node, i)[layout.LeafNodeKeyOffset:])
}

// SetKey writes the key of cell i.
func SetKey(node []byte, i uint32, key uint32) {
	binary.LittleEndian.PutUint32(Cell(node, i)[layout.LeafNodeKeyOffset:], key)
}

// Value returns the mutable value slot (row bytes) of cell i.
func Value(node []byte, i uint32) []byte {
	cell := Cell(node, i)
	return cell[layout.LeafNodeValueOffset : layout.LeafNodeValueOffset+layout.LeafNodeValueSize]
}

// InitializeLeaf marks node as an empty, non-root leaf.
func InitializeLeaf(node []byte) {
	node[layout.NodeTypeOffset] = byte(NodeKindLeaf)
	SetRoot(node, false)
	ResetNumCells(node)
}

package btree

import (
	"encoding/binary"

	"minidb/internal/layout"
)

// These are read-only accessors for an internal node's header and cells.
// The write path never builds one: the tree is pinned to a single leaf
// page, and overflow is reported as a non-fatal SplitNotImplemented error
// rather than an actual split. Only the read side lives here, backing the
// ".btree" debug inspector in internal/repl, which must still be able to
// render whatever a page contains without assuming it is always a leaf.

// InternalNumKeys reads an internal node's key count.
func InternalNumKeys(node []byte) uint32 {
	return binary.LittleEndian.Uint32(node[layout.InternalNodeNumKeysOffset:])
}

// InternalRightChild reads an internal node's rightmost child pointer.
func InternalRightChild(node []byte) uint32 {
	return binary.LittleEndian.Uint32(node[layout.InternalNodeRightChildOffset:])
}

func internalCell(node []byte, i uint32) []byte {
	offset := layout.InternalNodeHeaderSize + i*layout.InternalNodeCellSize
	return node[offset : offset+layout.InternalNodeCellSize]
}

// InternalChild returns the page number of child i. child_num == num_keys
// denotes the rightmost child, stored separately from the keyed cells.
func InternalChild(node []byte, childNum uint32) uint32 {
	numKeys := InternalNumKeys(node)
	if childNum == numKeys {
		return InternalRightChild(node)
	}
	return binary.LittleEndian.Uint32(internalCell(node, childNum))
}

// InternalKey returns the key of cell i.
func InternalKey(node []byte, i uint32) uint32 {
	cell := internalCell(node, i)
	return binary.LittleEndian.Uint32(cell[layout.InternalNodeChildSize:])
}

// InitializeInternal marks node as an empty, non-root internal node. Kept
// for the debug inspector and for tests that hand-build an internal-node
// page; the write path in internal/table never calls it.
func InitializeInternal(node []byte) {
	node[layout.NodeTypeOffset] = byte(NodeKindInternal)
	SetRoot(node, false)
	binary.LittleEndian.PutUint32(node[layout.InternalNodeNumKeysOffset:], 0)
}

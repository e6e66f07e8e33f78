// Package layout holds the compile-time sizes and byte offsets for the
// fixed "users" schema, the page format, and the B-tree leaf node header.
// Nothing here allocates or performs I/O; it is pure arithmetic shared by
// every other package that needs to agree on byte positions.
package layout

// Row field widths, per the hard-coded users schema.
const (
	IDSize       = 4
	UsernameSize = 32
	EmailSize    = 255
	RowSize      = IDSize + UsernameSize + EmailSize // 291
)

// Row field offsets within a serialized row.
const (
	IDOffset       = 0
	UsernameOffset = IDOffset + IDSize
	EmailOffset    = UsernameOffset + UsernameSize
)

// Page and cache geometry.
const (
	PageSize = 4096
	MaxPages = 100
)

// Common node header, shared by leaf and internal nodes.
const (
	NodeTypeSize   = 1
	NodeTypeOffset = 0

	IsRootSize   = 1
	IsRootOffset = NodeTypeOffset + NodeTypeSize

	ParentPointerSize   = 4
	ParentPointerOffset = IsRootOffset + IsRootSize

	CommonNodeHeaderSize = NodeTypeSize + IsRootSize + ParentPointerSize // 6
)

// Leaf node header and cell layout.
const (
	LeafNodeNumCellsSize   = 4
	LeafNodeNumCellsOffset = CommonNodeHeaderSize
	LeafNodeHeaderSize     = CommonNodeHeaderSize + LeafNodeNumCellsSize // 10

	LeafNodeKeySize     = 4
	LeafNodeKeyOffset   = 0
	LeafNodeValueSize   = RowSize
	LeafNodeValueOffset = LeafNodeKeyOffset + LeafNodeKeySize
	LeafNodeCellSize    = LeafNodeKeySize + LeafNodeValueSize // 295

	LeafNodeSpaceForCells = PageSize - LeafNodeHeaderSize            // 4086
	LeafNodeMaxCells      = LeafNodeSpaceForCells / LeafNodeCellSize // 13
)

// Internal node header and cell layout. The write path never produces an
// internal node (see internal/table); these offsets back only the
// read-only debug inspector in internal/btree.
const (
	InternalNodeNumKeysSize   = 4
	InternalNodeNumKeysOffset = CommonNodeHeaderSize

	InternalNodeRightChildSize   = 4
	InternalNodeRightChildOffset = InternalNodeNumKeysOffset + InternalNodeNumKeysSize

	InternalNodeHeaderSize = CommonNodeHeaderSize + InternalNodeNumKeysSize + InternalNodeRightChildSize

	InternalNodeKeySize   = 4
	InternalNodeChildSize = 4
	InternalNodeCellSize  = InternalNodeChildSize + InternalNodeKeySize

	InternalNodeMaxCells = (PageSize - InternalNodeHeaderSize) / InternalNodeCellSize
)

// TableMaxRows is a table's capacity: this engine never splits a leaf, so
// capacity is exactly one leaf's worth of cells.
const TableMaxRows = LeafNodeMaxCells

// RootPageNum is always the first page of the file.
const RootPageNum = 0

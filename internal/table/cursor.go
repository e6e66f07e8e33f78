package table

import (
	"minidb/internal/btree"
	"minidb/internal/layout"
)

// Cursor is a position (page, cell) inside the tree. It borrows its table
// for its lifetime; issuing a new cursor from the same table invalidates
// any cursor issued before it (see Table.newCursor), since at most one
// cursor may be live against a table at a time.
type Cursor struct {
	table      *Table
	pageNum    uint32
	CellNum    uint32
	EndOfTable bool

	invalid bool
}

func (c *Cursor) checkValid() error {
	if c.invalid {
		return ErrCursorInvalidated
	}
	return nil
}

func (c *Cursor) node() ([]byte, error) {
	if err := c.checkValid(); err != nil {
		return nil, err
	}
	page, err := c.table.pager.GetPage(c.pageNum)
	if err != nil {
		return nil, wrapPagerErr(err)
	}
	return page.Buffer[:], nil
}

// Value returns the mutable row-value byte slot of the cursor's current
// cell.
func (c *Cursor) Value() ([]byte, error) {
	node, err := c.node()
	if err != nil {
		return nil, err
	}
	return btree.Value(node, c.CellNum), nil
}

// Advance moves the cursor to the next cell, setting EndOfTable once it
// reaches num_cells.
func (c *Cursor) Advance() error {
	node, err := c.node()
	if err != nil {
		return err
	}
	c.CellNum++
	if c.CellNum >= btree.NumCells(node) {
		c.EndOfTable = true
	}
	return nil
}

// Insert writes a new cell (key, value) at the cursor's current position,
// shifting any cells at or after it one slot to the right. value must be
// exactly layout.RowSize bytes. The execution engine only ever calls
// Insert on an End() cursor (CellNum == numCells), so the shift loop never
// actually moves anything; it is kept so a future ordered-insert path can
// reuse this same method.
func (c *Cursor) Insert(key uint32, value []byte) error {
	node, err := c.node()
	if err != nil {
		return err
	}

	numCells := btree.NumCells(node)
	if numCells >= layout.LeafNodeMaxCells {
		return &Error{Kind: KindSplitNotImplemented}
	}

	for i := numCells; i > c.CellNum; i-- {
		copy(btree.Cell(node, i), btree.Cell(node, i-1))
	}

	btree.SetKey(node, c.CellNum, key)
	copy(btree.Value(node, c.CellNum), value)
	btree.SetNumCells(node, numCells+1)

	return nil
}

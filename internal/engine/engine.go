// Package engine maps parsed statements onto cursor operations: Insert
// serializes a row into an End() cursor; Select walks a Start() cursor to
// end-of-table, deserializing each row. Statement parsing itself is an
// external collaborator's job (internal/repl), not the engine's.
package engine

import (
	"github.com/pkg/errors"

	"minidb/internal/layout"
	"minidb/internal/row"
	"minidb/internal/table"
)

// StatementKind distinguishes the two supported statements.
type StatementKind int

const (
	StatementInsert StatementKind = iota
	StatementSelect
)

// Statement is a parsed query, ready for Execute.
type Statement struct {
	Kind        StatementKind
	RowToInsert row.Row
}

// ResultKind distinguishes Execute's two outcomes.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultRows
)

// Result is what a successful Execute returns.
type Result struct {
	Kind ResultKind
	Rows []row.Row
}

// ErrKind classifies an engine-level error.
type ErrKind int

const (
	// ErrTableFull means the row count is already at TableMaxRows.
	ErrTableFull ErrKind = iota
	// ErrRowRead means a cell's value slot could not be read back as a
	// fixed-size row (a slice-conversion failure).
	ErrRowRead
	// ErrWrite means writing serialized row bytes into a cursor's value
	// slot failed.
	ErrWrite
	// ErrTable wraps a *table.Error.
	ErrTable
)

// Error is the error type Execute returns.
type Error struct {
	Kind  ErrKind
	Table *table.Error
	Err   error
}

func (e *Error) Error() string { return e.String() }

// String renders the debug-enum-style token the REPL's error transcript
// expects: TableFull, RowRead(...), Write(...), Table(...).
func (e *Error) String() string {
	switch e.Kind {
	case ErrTableFull:
		return "TableFull"
	case ErrRowRead:
		return "RowRead(" + errString(e.Err) + ")"
	case ErrWrite:
		return "Write(" + errString(e.Err) + ")"
	default:
		return "Table(" + e.Table.String() + ")"
	}
}

func (e *Error) Unwrap() error {
	if e.Table != nil {
		return e.Table
	}
	return e.Err
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// wrapTableErr reports err as a Table(...) error when it is a *table.Error,
// or as a Write(...) error otherwise — never constructing a Table field
// from a zero-value *table.Error, whose String method assumes a populated
// Kind/Pager pair.
func wrapTableErr(err error) *Error {
	if te, ok := err.(*table.Error); ok {
		return &Error{Kind: ErrTable, Table: te, Err: err}
	}
	return &Error{Kind: ErrWrite, Err: err}
}

// Execute dispatches stmt against tb: Insert appends a serialized row at
// the table's end; Select walks every row in storage order.
func Execute(tb *table.Table, stmt Statement) (Result, error) {
	switch stmt.Kind {
	case StatementInsert:
		return executeInsert(tb, stmt.RowToInsert)
	case StatementSelect:
		return executeSelect(tb)
	default:
		return Result{}, &Error{Kind: ErrWrite, Err: errors.New("engine: unrecognized statement kind")}
	}
}

func executeInsert(tb *table.Table, r row.Row) (Result, error) {
	count, err := tb.RowCount()
	if err != nil {
		return Result{}, wrapTableErr(err)
	}
	if count >= layout.TableMaxRows {
		return Result{}, &Error{Kind: ErrTableFull}
	}

	cur, err := tb.End()
	if err != nil {
		return Result{}, wrapTableErr(err)
	}

	buf := make([]byte, layout.RowSize)
	row.Serialize(r, buf)

	if err := cur.Insert(r.ID, buf); err != nil {
		return Result{}, wrapTableErr(err)
	}

	return Result{Kind: ResultSuccess}, nil
}

func executeSelect(tb *table.Table) (Result, error) {
	cur, err := tb.Start()
	if err != nil {
		return Result{}, wrapTableErr(err)
	}

	var rows []row.Row
	for !cur.EndOfTable {
		val, err := cur.Value()
		if err != nil {
			return Result{}, wrapTableErr(err)
		}
		rows = append(rows, row.Deserialize(val))

		if err := cur.Advance(); err != nil {
			return Result{}, wrapTableErr(err)
		}
	}

	return Result{Kind: ResultRows, Rows: rows}, nil
}

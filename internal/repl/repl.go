// Package repl implements the interactive loop: prompt printing, line
// reading, meta-command dispatch, statement parsing, and transcript
// formatting. It depends on internal/engine, internal/table,
// internal/config, internal/btree, and internal/layout; nothing in those
// packages imports it back.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"minidb/internal/btree"
	"minidb/internal/config"
	"minidb/internal/engine"
	"minidb/internal/layout"
	"minidb/internal/table"
)

// REPL drives the read-eval-print loop against a single open table. Log
// receives structured diagnostics (statement dispatch, execute/close
// failures) at the level cfg.Logger() configured; it never writes to Out,
// so it cannot perturb the transcript.
type REPL struct {
	Table  *table.Table
	Out    io.Writer
	Log    *logrus.Logger
	Config config.Config
}

// New builds a REPL whose Log is cfg.Logger(); the caller is responsible
// for opening the Table with the same cfg's logger so pager diagnostics
// land at the same configured level (see table.OpenWithLogger).
func New(tb *table.Table, out io.Writer, cfg config.Config) *REPL {
	log := cfg.Logger()
	return &REPL{Table: tb, Out: out, Log: log, Config: cfg}
}

// Run reads lines from in until ".exit" or EOF, writing the prompt and
// result transcript to r.Out. It returns nil on a clean ".exit" and a
// non-nil error only if the table failed to close cleanly at exit.
func (r *REPL) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(r.Out, "db > ")

		if !scanner.Scan() {
			return r.Table.Close()
		}
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.HasPrefix(line, ".") {
			done, err := r.doMetaCommand(line)
			if err != nil {
				fmt.Fprintf(r.Out, "db message: %s\n", err)
			}
			if done {
				return err
			}
			continue
		}

		r.runStatement(line)
	}
}

func (r *REPL) runStatement(line string) {
	fmt.Fprintf(r.Out, "processing statement %q\n", line)
	r.Log.WithField("statement", line).Debug("processing statement")

	stmt, perr := PrepareStatement(line)
	if perr != nil {
		fmt.Fprintf(r.Out, "db message: Statement(%s)\n", perr)
		r.Log.WithField("statement", line).Warn("statement rejected: ", perr)
		return
	}

	switch stmt.Kind {
	case engine.StatementInsert:
		fmt.Fprintln(r.Out, "executing insert statement")
	case engine.StatementSelect:
		fmt.Fprintln(r.Out, "executing select statement")
	}

	result, err := engine.Execute(r.Table, stmt)
	if err != nil {
		fmt.Fprintf(r.Out, "db message: Execute(%s)\n", err)
		r.Log.WithField("statement", line).Error("execute failed: ", err)
		return
	}

	switch result.Kind {
	case engine.ResultRows:
		for _, row := range result.Rows {
			fmt.Fprintf(r.Out, "%d, %q, %q\n", row.ID, row.Username, row.Email)
		}
	default:
		fmt.Fprintln(r.Out, "result Success")
	}
}

// doMetaCommand handles a "."-prefixed line. It reports (exit, error).
func (r *REPL) doMetaCommand(line string) (bool, error) {
	switch line {
	case ".exit":
		if err := r.Table.Close(); err != nil {
			r.Log.Error("flush on exit failed: ", err)
			return true, err
		}
		fmt.Fprintln(r.Out, "Bye!")
		return true, nil
	case ".btree":
		if !r.Config.DebugEnabled() {
			fmt.Fprintln(r.Out, "unrecognized command")
			return false, nil
		}
		r.printTree()
		return false, nil
	case ".constants":
		if !r.Config.DebugEnabled() {
			fmt.Fprintln(r.Out, "unrecognized command")
			return false, nil
		}
		r.printConstants()
		return false, nil
	default:
		fmt.Fprintf(r.Out, "unrecognized command %q\n", line)
		return false, nil
	}
}

func (r *REPL) printConstants() {
	fmt.Fprintln(r.Out, "Constants:")
	fmt.Fprintf(r.Out, "ROW_SIZE: %d\n", layout.RowSize)
	fmt.Fprintf(r.Out, "COMMON_NODE_HEADER_SIZE: %d\n", layout.CommonNodeHeaderSize)
	fmt.Fprintf(r.Out, "LEAF_NODE_HEADER_SIZE: %d\n", layout.LeafNodeHeaderSize)
	fmt.Fprintf(r.Out, "LEAF_NODE_CELL_SIZE: %d\n", layout.LeafNodeCellSize)
	fmt.Fprintf(r.Out, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", layout.LeafNodeSpaceForCells)
	fmt.Fprintf(r.Out, "LEAF_NODE_MAX_CELLS: %d\n", layout.LeafNodeMaxCells)
}

// printTree renders whatever node shape the root page currently holds.
// The write path only ever produces a leaf (see internal/table), so the
// internal branch below is a read-only contingency, not a feature this
// engine exercises in normal operation.
func (r *REPL) printTree() {
	fmt.Fprintln(r.Out, "Tree:")

	node, err := r.rootNodeBytes()
	if err != nil {
		fmt.Fprintf(r.Out, "db message: %s\n", err)
		return
	}

	switch btree.Kind(node) {
	case btree.NodeKindLeaf:
		numCells := btree.NumCells(node)
		fmt.Fprintf(r.Out, "- leaf (size %d)\n", numCells)
		for i := uint32(0); i < numCells; i++ {
			fmt.Fprintf(r.Out, "  - %d\n", btree.Key(node, i))
		}
	case btree.NodeKindInternal:
		numKeys := btree.InternalNumKeys(node)
		fmt.Fprintf(r.Out, "- internal (size %d)\n", numKeys)
		for i := uint32(0); i < numKeys; i++ {
			fmt.Fprintf(r.Out, "  - child %d, key %d\n", btree.InternalChild(node, i), btree.InternalKey(node, i))
		}
		fmt.Fprintf(r.Out, "  - right child %d\n", btree.InternalRightChild(node))
	}
}

func (r *REPL) rootNodeBytes() ([]byte, error) {
	return r.Table.RootBytes()
}

package main

import (
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runScript builds the minidb binary, runs it against a temp database file
// with the given commands piped to stdin, and returns its stdout split
// into non-empty lines.
func runScript(t *testing.T, dbPath string, commands []string) []string {
	t.Helper()

	bin := filepath.Join(t.TempDir(), "minidb_test_bin")
	build := exec.Command("go", "build", "-o", bin, ".")
	out, err := build.CombinedOutput()
	require.NoErrorf(t, err, "build failed: %s", out)

	cmd := exec.Command(bin, dbPath)

	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)

	require.NoError(t, cmd.Start())

	for _, c := range commands {
		io.WriteString(stdin, c+"\n")
	}
	stdin.Close()

	output, err := io.ReadAll(stdout)
	require.NoError(t, err)
	cmd.Wait()

	var lines []string
	for _, line := range strings.Split(string(output), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Insert then select round trips a single row.
func TestScenarioInsertAndSelect(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	lines := runScript(t, dbPath, []string{
		"insert 1 user1 person1@example.com",
		"select",
		".exit",
	})

	joined := strings.Join(lines, "\n")
	require.Contains(t, joined, "result Success")
	require.Contains(t, joined, `1, "user1", "person1@example.com"`)
	require.Contains(t, joined, "Bye!")
}

// Max-width username/email survive the round trip exactly.
func TestScenarioMaxWidthFields(t *testing.T) {
	username := strings.Repeat("a", 32)
	email := strings.Repeat("a", 255)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	lines := runScript(t, dbPath, []string{
		fmt.Sprintf("insert 1 %s %s", username, email),
		"select",
		".exit",
	})

	joined := strings.Join(lines, "\n")
	require.Contains(t, joined, fmt.Sprintf("1, %q, %q", username, email))
}

// Oversized fields are rejected with Statement(TooLong).
func TestScenarioTooLong(t *testing.T) {
	username := strings.Repeat("a", 33)
	email := strings.Repeat("a", 256)

	dbPath := filepath.Join(t.TempDir(), "test.db")
	lines := runScript(t, dbPath, []string{
		fmt.Sprintf("insert 1 %s %s", username, email),
		".exit",
	})

	require.Contains(t, strings.Join(lines, "\n"), "db message: Statement(TooLong)")
}

// A negative id is rejected with Statement(InvalidId).
func TestScenarioInvalidID(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	lines := runScript(t, dbPath, []string{
		"insert -1 a a",
		".exit",
	})

	require.Contains(t, strings.Join(lines, "\n"), "db message: Statement(InvalidId)")
}

// Inserting past capacity reports Execute(TableFull) without altering
// state. This repository pins the single-leaf storage shape, so capacity
// is layout.TableMaxRows (13).
func TestScenarioTableFull(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	var commands []string
	for i := 1; i <= 14; i++ {
		commands = append(commands, fmt.Sprintf("insert %d user%d person%d@example.com", i, i, i))
	}
	commands = append(commands, ".exit")

	lines := runScript(t, dbPath, commands)

	require.Contains(t, strings.Join(lines, "\n"), "db message: Execute(TableFull)")
}

// A row inserted in one process is visible to a fresh process over the
// same file.
func TestScenarioPersistsAcrossRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	runScript(t, dbPath, []string{
		"insert 1 user1 person1@example.com",
		".exit",
	})

	lines := runScript(t, dbPath, []string{
		"select",
		".exit",
	})

	require.Contains(t, strings.Join(lines, "\n"), `1, "user1", "person1@example.com"`)
}


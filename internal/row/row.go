// Package row serializes and deserializes the fixed "users" schema to and
// from a ROW_SIZE byte slot, matching the leaf node's cell value layout.
package row

import (
	"bytes"
	"encoding/binary"

	"minidb/internal/layout"
)

// Row is one record of the hard-coded users schema.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// Serialize writes row into dst, which must be exactly layout.RowSize
// bytes. The id is written little-endian, matching the leaf node's key
// encoding uniformly across the whole file. Username and Email are
// right-padded with zero bytes to their fixed widths.
func Serialize(r Row, dst []byte) {
	binary.LittleEndian.PutUint32(dst[layout.IDOffset:], r.ID)

	usernameSlot := dst[layout.UsernameOffset : layout.UsernameOffset+layout.UsernameSize]
	clear(usernameSlot)
	copy(usernameSlot, r.Username)

	emailSlot := dst[layout.EmailOffset : layout.EmailOffset+layout.EmailSize]
	clear(emailSlot)
	copy(emailSlot, r.Email)
}

// Deserialize reads a Row out of src, which must be exactly layout.RowSize
// bytes. Trailing zero bytes are trimmed from Username and Email so the
// result is ready for display or equality comparison against a Row built
// from trimmed strings.
func Deserialize(src []byte) Row {
	id := binary.LittleEndian.Uint32(src[layout.IDOffset:])
	username := trimTrailingZero(src[layout.UsernameOffset : layout.UsernameOffset+layout.UsernameSize])
	email := trimTrailingZero(src[layout.EmailOffset : layout.EmailOffset+layout.EmailSize])

	return Row{ID: id, Username: username, Email: email}
}

func trimTrailingZero(b []byte) string {
	return string(bytes.TrimRight(b, "\x00"))
}

func clear(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

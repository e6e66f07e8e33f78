package row

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"minidb/internal/layout"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	r := Row{ID: 7, Username: "alice", Email: "alice@example.com"}

	buf := make([]byte, layout.RowSize)
	Serialize(r, buf)

	got := Deserialize(buf)
	assert.Equal(t, r, got)
}

func TestSerializePadsWithZeroBytes(t *testing.T) {
	r := Row{ID: 1, Username: "a", Email: "b"}

	buf := make([]byte, layout.RowSize)
	Serialize(r, buf)

	usernameSlot := buf[layout.UsernameOffset : layout.UsernameOffset+layout.UsernameSize]
	assert.Equal(t, byte('a'), usernameSlot[0])
	for _, b := range usernameSlot[1:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestSerializeMaxWidthFields(t *testing.T) {
	username := make([]byte, layout.UsernameSize)
	email := make([]byte, layout.EmailSize)
	for i := range username {
		username[i] = 'a'
	}
	for i := range email {
		email[i] = 'z'
	}

	r := Row{ID: 1, Username: string(username), Email: string(email)}
	buf := make([]byte, layout.RowSize)
	Serialize(r, buf)

	got := Deserialize(buf)
	assert.Equal(t, r, got)
}

func TestIDIsLittleEndian(t *testing.T) {
	r := Row{ID: 0x01020304, Username: "u", Email: "e"}
	buf := make([]byte, layout.RowSize)
	Serialize(r, buf)

	assert.Equal(t, byte(0x04), buf[layout.IDOffset+0])
	assert.Equal(t, byte(0x03), buf[layout.IDOffset+1])
	assert.Equal(t, byte(0x02), buf[layout.IDOffset+2])
	assert.Equal(t, byte(0x01), buf[layout.IDOffset+3])
}

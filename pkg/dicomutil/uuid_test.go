package dicomutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyntheticInstanceUIDIsDeterministic(t *testing.T) {
	data := []byte("some dataset bytes")
	assert.Equal(t, SyntheticInstanceUID(data), SyntheticInstanceUID(data))
}

func TestSyntheticInstanceUIDDiffersByInput(t *testing.T) {
	assert.NotEqual(t, SyntheticInstanceUID([]byte("a")), SyntheticInstanceUID([]byte("b")))
}

func TestSyntheticInstanceUIDIsWellFormed(t *testing.T) {
	id := SyntheticInstanceUID([]byte("x"))
	assert.Len(t, id, 36) // canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form
}

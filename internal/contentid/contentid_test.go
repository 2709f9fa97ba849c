package contentid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clefworks/scorevault/internal/contentid"
)

func TestHash_Deterministic(t *testing.T) {
	data := []byte("<score-partwise><work><work-title>Gymnopedie No. 1</work-title></work></score-partwise>")

	first := contentid.Hash(data)
	second := contentid.Hash(data)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64) // hex-encoded SHA-256
}

func TestHash_SingleByteChange(t *testing.T) {
	data := []byte("<score-partwise><work><work-title>Gymnopedie No. 1</work-title></work></score-partwise>")
	altered := make([]byte, len(data))
	copy(altered, data)
	altered[len(altered)/2] ^= 0x01

	assert.NotEqual(t, contentid.Hash(data), contentid.Hash(altered))
}

func TestHash_WhitespaceVariantsDiffer(t *testing.T) {
	compact := []byte("<score-partwise><work/></score-partwise>")
	indented := []byte("<score-partwise>\n  <work/>\n</score-partwise>")

	assert.NotEqual(t, contentid.Hash(compact), contentid.Hash(indented))
}

func TestHash_EmptyInput(t *testing.T) {
	assert.Len(t, contentid.Hash(nil), 64)
	assert.Equal(t, contentid.Hash(nil), contentid.Hash([]byte{}))
}

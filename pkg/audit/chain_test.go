package audit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChainAppend(t *testing.T) {
	chain := NewChain()

	first := chain.Append("posted entry 2026-0001")
	second := chain.Append("posted entry 2026-0002")

	assert.Equal(t, strings.Repeat("0", 64), first.PreviousHash)
	assert.Equal(t, first.Hash, second.PreviousHash)
	assert.Len(t, first.Hash, 64)
}

func TestVerify(t *testing.T) {
	chain := NewChain()
	chain.Append("a")
	chain.Append("b")
	chain.Append("c")

	records := chain.Records()
	require.Len(t, records, 3)
	assert.True(t, Verify(records))

	// Tampering with a payload breaks the chain.
	records[1].Payload = "b'"
	assert.False(t, Verify(records))

	// Dropping a middle record breaks the chain.
	records = chain.Records()
	assert.False(t, Verify(append(records[:1], records[2])))

	assert.True(t, Verify(nil))
}

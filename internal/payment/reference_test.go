package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReference(t *testing.T) {
	now := time.UnixMilli(1760600000123)

	ref := NewReference("ord-42", now)
	assert.Equal(t, "ORD-ord-42-1760600000123", ref)

	id, err := ParseReference(ref)
	require.NoError(t, err)
	assert.Equal(t, "ord-42", id)
}

func TestParseReference_Invalid(t *testing.T) {
	for _, ref := range []string{"", "PAY-1-2", "ORD-", "ORD-abc", "ORD-1-", "ORD-1-12a", "ORD--123"} {
		_, err := ParseReference(ref)
		assert.ErrorIs(t, err, ErrInvalidReference, ref)
	}
}

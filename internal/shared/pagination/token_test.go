package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	token, err := Encode(Cursor{LastID: "order-42", LastCreatedAt: "2025-06-01T10:00:00Z"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cursor, err := Decode(token)
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, "order-42", cursor.LastID)
	assert.Equal(t, "2025-06-01T10:00:00Z", cursor.LastCreatedAt)
}

func TestDecode_EmptyMeansStart(t *testing.T) {
	cursor, err := Decode("")
	require.NoError(t, err)
	assert.Nil(t, cursor)

	cursor, err = Decode("   ")
	require.NoError(t, err)
	assert.Nil(t, cursor)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode("not base64 at all!!!")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Valid base64 of invalid JSON.
	_, err = Decode("bm90IGpzb24=")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Valid JSON missing the required field.
	_, err = Decode("e30=")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package postgres

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkIDs(t *testing.T) {
	ids := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		ids = append(ids, fmt.Sprintf("id-%d", i))
	}

	chunks := chunkIDs(ids, 3)
	require.Len(t, chunks, 3)
	require.Equal(t, []string{"id-0", "id-1", "id-2"}, chunks[0])
	require.Equal(t, []string{"id-3", "id-4", "id-5"}, chunks[1])
	require.Equal(t, []string{"id-6"}, chunks[2])
}

func TestChunkIDs_ExactMultiple(t *testing.T) {
	chunks := chunkIDs([]string{"a", "b", "c", "d"}, 2)
	require.Len(t, chunks, 2)
	require.Equal(t, []string{"a", "b"}, chunks[0])
	require.Equal(t, []string{"c", "d"}, chunks[1])
}

func TestChunkIDs_Empty(t *testing.T) {
	require.Nil(t, chunkIDs(nil, 100))
	require.Nil(t, chunkIDs([]string{}, 100))
}

func TestChunkIDs_SmallerThanSize(t *testing.T) {
	chunks := chunkIDs([]string{"a"}, 100)
	require.Len(t, chunks, 1)
	require.Equal(t, []string{"a"}, chunks[0])
}

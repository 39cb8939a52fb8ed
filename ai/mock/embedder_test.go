package mock

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	embedder := NewMockEmbedder()
	ctx := context.Background()

	first, err := embedder.EmbedText(ctx, "College: Government Science College")
	require.NoError(t, err)
	second, err := embedder.EmbedText(ctx, "College: Government Science College")
	require.NoError(t, err)

	require.Len(t, first, embeddingDim)
	assert.Equal(t, first, second, "same text always embeds to the same vector")

	other, err := embedder.EmbedText(ctx, "College: Government Commerce College")
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "different texts embed differently")
}

func TestMockEmbedder_UnitNorm(t *testing.T) {
	embedder := NewMockEmbedder()

	vector, err := embedder.EmbedText(context.Background(), "College: Test College")
	require.NoError(t, err)

	var sumSquares float64
	for _, v := range vector {
		sumSquares += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sumSquares), 1e-3, "vectors are unit length")
}

func TestMockEmbedder_InjectedFunc(t *testing.T) {
	embedder := NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0}, nil
	}

	vector, err := embedder.EmbedText(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, vector)
	assert.Equal(t, 1, embedder.CallCount())

	embedder.Reset()
	assert.Equal(t, 0, embedder.CallCount())
	assert.Nil(t, embedder.EmbedTextFunc)
}

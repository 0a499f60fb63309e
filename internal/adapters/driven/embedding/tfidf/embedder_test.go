package tfidf

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	e := New()
	require.NotNil(t, e)
	assert.Equal(t, "tfidf", e.ModelName())
	assert.Equal(t, 0, e.Dimensions())
}

func TestFit_EmptyCorpus(t *testing.T) {
	e := New()
	assert.Error(t, e.Fit(nil))
	assert.Error(t, e.Fit([]string{}))
}

func TestEmbed_NotFitted(t *testing.T) {
	e := New()
	_, err := e.Embed(context.Background(), "capital france")
	assert.Error(t, err)
}

func TestEmbed_Normalized(t *testing.T) {
	e := New()
	require.NoError(t, e.Fit([]string{
		"capital france",
		"sky blue scattering",
		"password reset procedure",
	}))
	assert.Positive(t, e.Dimensions())

	vec, err := e.Embed(context.Background(), "capital france")
	require.NoError(t, err)
	require.Len(t, vec, e.Dimensions())

	// Vectors are L2-normalized.
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
}

func TestEmbed_IdenticalTextsMatch(t *testing.T) {
	e := New()
	require.NoError(t, e.Fit([]string{"capital france", "sky blue"}))
	ctx := context.Background()

	a, err := e.Embed(ctx, "capital france")
	require.NoError(t, err)
	b, err := e.Embed(ctx, "capital france")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEmbed_OutOfVocabulary(t *testing.T) {
	e := New()
	require.NoError(t, e.Fit([]string{"capital france", "sky blue"}))

	vec, err := e.Embed(context.Background(), "quantum entanglement")
	require.NoError(t, err)

	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestEmbedBatch(t *testing.T) {
	e := New()
	require.NoError(t, e.Fit([]string{"capital france", "sky blue"}))

	vecs, err := e.EmbedBatch(context.Background(), []string{"capital", "sky"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Len(t, vecs[0], e.Dimensions())
}

func TestPing(t *testing.T) {
	assert.NoError(t, New().Ping(context.Background()))
}

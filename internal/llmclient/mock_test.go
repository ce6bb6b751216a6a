package llmclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockClientCyclesResponses(t *testing.T) {
	m := NewMockClient(`{"a":1}`, `{"b":2}`)

	got, err := m.Generate(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, got)

	got, err = m.Generate(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, got)

	got, err = m.Generate(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, got, "exhausted responses repeat the last entry")

	assert.Equal(t, 3, m.CallCount())
}

func TestMockClientErrorsWithNoResponses(t *testing.T) {
	m := NewMockClient()
	_, err := m.Generate(context.Background(), "sys", "user")
	assert.ErrorContains(t, err, "no canned responses")
}

func TestMockClientGenerateWithImageAlsoCycles(t *testing.T) {
	m := NewMockClient(`{"done":true}`)
	got, err := m.GenerateWithImage(context.Background(), "sys", "user", "base64data", "image/png")
	require.NoError(t, err)
	assert.Equal(t, `{"done":true}`, got)
}

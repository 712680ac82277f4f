package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountTokensUnknownModel(t *testing.T) {
	_, err := CountTokens("hello world", "no-such-model")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-model")
}

func TestCountTokensEmptyText(t *testing.T) {
	n, err := CountTokens("", "gpt-3.5-turbo")
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}
	assert.Zero(t, n)
}

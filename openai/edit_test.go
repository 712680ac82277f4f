package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdit(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/edits", r.URL.Path)

		var param EditParam
		require.NoError(t, json.NewDecoder(r.Body).Decode(&param))
		assert.Equal(t, "text-davinci-edit-001", param.Model)
		assert.Equal(t, "Fix the spelling mistakes", param.Instruction)
		assert.Equal(t, "What day of the wek is it?", param.Input)

		fmt.Fprint(w, `{
			"object": "edit",
			"created": 1700000000,
			"choices": [
				{"text": "What day of the week is it?\n", "index": 0}
			],
			"usage": {"prompt_tokens": 25, "completion_tokens": 32, "total_tokens": 57}
		}`)
	})

	edit, err := c.Edit(context.Background(), &EditParam{
		Model:       "text-davinci-edit-001",
		Instruction: "Fix the spelling mistakes",
		Input:       "What day of the wek is it?",
	})
	require.NoError(t, err)
	require.Len(t, edit.Choices, 1)
	assert.Equal(t, "What day of the week is it?\n", edit.Choices[0].Text)
	assert.Equal(t, 57, edit.Usage.TotalTokens)
}

func TestEditValidation(t *testing.T) {
	c := New("sk-test")

	_, err := c.Edit(context.Background(), nil)
	assert.Equal(t, ErrModelRequired, err)

	_, err = c.Edit(context.Background(), &EditParam{Model: "text-davinci-edit-001"})
	assert.Equal(t, ErrInstructionRequired, err)
}

package openai

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// CountTokens returns the number of tokens text occupies under the given
// model's encoding. Useful for sizing MaxTokens before dispatching a
// request. The count is computed locally; no API call is made.
func CountTokens(text, model string) (int, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return 0, fmt.Errorf("token encoding for %s: %w", model, err)
	}
	return len(enc.Encode(text, nil, nil)), nil
}

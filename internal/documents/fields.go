package documents

import (
	"context"
	"encoding/json"
	"strings"

	"docproc-backend/internal/llm"
)

// ExtractFields asks the model to turn the document text into structured JSON.
// A reply that does not parse as JSON after fence stripping is ErrModelJSON;
// transport failures pass through unchanged.
func ExtractFields(ctx context.Context, client llm.Client, text string) (json.RawMessage, error) {
	reply, err := client.Complete(ctx, llm.ExtractionPrompt(text))
	if err != nil {
		return nil, err
	}

	cleaned := stripFences(reply)
	if cleaned == "" || !json.Valid([]byte(cleaned)) {
		return nil, ErrModelJSON
	}
	return json.RawMessage(cleaned), nil
}

// stripFences removes markdown code-fence markers models like to wrap
// JSON replies in.
func stripFences(raw string) string {
	s := strings.ReplaceAll(raw, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

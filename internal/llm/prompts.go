package llm

import "fmt"

// classificationInputLimit bounds how much document text goes into the
// classification prompt. The full text is still stored and embedded.
const classificationInputLimit = 3000

// ClassificationPrompt builds the prompt asking the model to label a document.
func ClassificationPrompt(text string) string {
	if len(text) > classificationInputLimit {
		text = text[:classificationInputLimit]
	}
	return fmt.Sprintf(`You are a document classifier. Based on the text below, classify the document type into one of the following categories:
- invoice
- purchase_order
- approval
Respond with ONLY one of these words and nothing else.

Document text:
%s`, text)
}

// ExtractionPrompt builds the prompt asking the model for structured JSON.
func ExtractionPrompt(text string) string {
	return fmt.Sprintf(`system: You are a document information extractor that converts text into structured JSON data.
user: %s`, text)
}

package documents

import (
	"context"
	"strings"

	"docproc-backend/internal/llm"
	"docproc-backend/internal/shared/telemetry"
)

// Classify asks the model to label the text as one of the known types.
// It never fails: any model error or unrecognized reply falls back to invoice.
func Classify(ctx context.Context, client llm.Client, text string) DocumentType {
	reply, err := client.Complete(ctx, llm.ClassificationPrompt(text))
	if err != nil {
		telemetry.Warn("classify.fallback", map[string]any{"error": err.Error()})
		return TypeInvoice
	}
	return parseClassification(reply)
}

// parseClassification matches by substring containment, first match wins.
// The model may pad its answer with extra words; only containment matters.
func parseClassification(reply string) DocumentType {
	s := strings.ToLower(strings.TrimSpace(reply))
	switch {
	case strings.Contains(s, "invoice"):
		return TypeInvoice
	case strings.Contains(s, "purchase") || strings.Contains(s, "order"):
		return TypePurchaseOrder
	case strings.Contains(s, "approval"):
		return TypeApproval
	default:
		return TypeInvoice
	}
}

package documents

import (
	"encoding/json"
	"strings"
	"time"
)

// DocumentType partitions stored documents into logical collections.
type DocumentType string

const (
	TypeInvoice       DocumentType = "invoice"
	TypePurchaseOrder DocumentType = "purchase_order"
	TypeApproval      DocumentType = "approval"
)

// Types lists every known document type.
func Types() []DocumentType {
	return []DocumentType{TypeInvoice, TypePurchaseOrder, TypeApproval}
}

// ParseDocumentType maps a raw string onto a known DocumentType.
func ParseDocumentType(raw string) (DocumentType, bool) {
	switch DocumentType(strings.ToLower(strings.TrimSpace(raw))) {
	case TypeInvoice:
		return TypeInvoice, true
	case TypePurchaseOrder:
		return TypePurchaseOrder, true
	case TypeApproval:
		return TypeApproval, true
	default:
		return "", false
	}
}

// Title renders the type for human-facing messages, e.g. "Purchase Order".
func (t DocumentType) Title() string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Document is a processed, classified document. The type is fixed at creation
// and the record is never updated afterwards.
type Document struct {
	ID            string
	FileName      string
	Type          DocumentType
	ExtractedText string
	Data          json.RawMessage
	Embedding     []float64
	CreatedAt     time.Time
}

package documents

import (
	"context"
	"errors"
	"testing"
)

func TestParseClassification(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  DocumentType
	}{
		{"exact invoice", "invoice", TypeInvoice},
		{"exact purchase order", "purchase_order", TypePurchaseOrder},
		{"exact approval", "approval", TypeApproval},
		{"uppercase", "INVOICE", TypeInvoice},
		{"padded reply", "The document is an approval request.", TypeApproval},
		{"order keyword alone", "this looks like an order", TypePurchaseOrder},
		{"purchase keyword alone", "purchase", TypePurchaseOrder},
		{"invoice wins over approval", "invoice approval", TypeInvoice},
		{"unrecognized falls back", "receipt", TypeInvoice},
		{"empty falls back", "", TypeInvoice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseClassification(tc.reply); got != tc.want {
				t.Fatalf("parseClassification(%q) = %q, want %q", tc.reply, got, tc.want)
			}
		})
	}
}

func TestClassifyFallsBackOnClientError(t *testing.T) {
	client := scriptedLLM{err: errors.New("model unavailable")}
	got := Classify(context.Background(), client, "some text")
	if got != TypeInvoice {
		t.Fatalf("expected invoice fallback, got %q", got)
	}
}

func TestClassifyUsesModelReply(t *testing.T) {
	client := scriptedLLM{classify: "purchase_order"}
	got := Classify(context.Background(), client, "PO #88 for 12 widgets")
	if got != TypePurchaseOrder {
		t.Fatalf("expected purchase_order, got %q", got)
	}
}

package documents

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// scriptedLLM answers classification and extraction prompts with fixed
// replies. The classification prompt is recognized by its instruction text.
type scriptedLLM struct {
	classify    string
	extractJSON string
	err         error
}

func (s scriptedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if strings.Contains(prompt, "document classifier") {
		return s.classify, nil
	}
	return s.extractJSON, nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f fakeExtractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	return f.text, f.err
}

type fakeEmbedder struct {
	vec []float64
	err error
}

func (f fakeEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return f.vec, f.err
}

func (f fakeEmbedder) Dimension() int { return len(f.vec) }

func newTestService(repo Repo, llmClient scriptedLLM, extractorText string) *Service {
	return &Service{
		Extractor: fakeExtractor{text: extractorText},
		LLM:       llmClient,
		Embedder:  fakeEmbedder{vec: []float64{0.1, 0.2}},
		Repo:      repo,
	}
}

func TestServiceProcessStoresDocument(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newTestService(repo, scriptedLLM{
		classify:    "invoice",
		extractJSON: "```json\n{\"total\": 50}\n```",
	}, "Invoice #123 Total $50")

	result, err := svc.Process(context.Background(), "invoice1.pdf", []byte("raw"))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.Duplicate {
		t.Fatal("unexpected duplicate")
	}
	if result.Document.ID == "" {
		t.Fatal("stored document missing id")
	}
	if result.Document.Type != TypeInvoice {
		t.Fatalf("document type = %q, want invoice", result.Document.Type)
	}
	if string(result.Document.Data) != `{"total": 50}` {
		t.Fatalf("unexpected data: %s", result.Document.Data)
	}

	docs, err := repo.ListByType(context.Background(), TypeInvoice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("stored %d documents, want 1", len(docs))
	}
	if len(docs[0].Embedding) != 2 {
		t.Fatalf("embedding not persisted: %v", docs[0].Embedding)
	}
}

func TestServiceProcessDetectsDuplicate(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newTestService(repo, scriptedLLM{
		classify:    "invoice",
		extractJSON: `{"total": 50}`,
	}, "Invoice #123 Total $50")

	first, err := svc.Process(context.Background(), "invoice1.pdf", []byte("raw"))
	if err != nil {
		t.Fatalf("first Process: %v", err)
	}

	second, err := svc.Process(context.Background(), "invoice1.pdf", []byte("raw"))
	if err != nil {
		t.Fatalf("second Process: %v", err)
	}
	if !second.Duplicate {
		t.Fatal("expected duplicate on re-upload")
	}
	if second.ExistingID != first.Document.ID {
		t.Fatalf("existing id = %q, want %q", second.ExistingID, first.Document.ID)
	}
	if string(second.Document.Data) != `{"total": 50}` {
		t.Fatalf("duplicate result missing fresh data: %s", second.Document.Data)
	}

	docs, err := repo.ListByType(context.Background(), TypeInvoice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("duplicate must not be stored, have %d documents", len(docs))
	}
}

func TestServiceProcessDuplicateByTextOnly(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newTestService(repo, scriptedLLM{
		classify:    "approval",
		extractJSON: `{}`,
	}, "Request approved by manager")

	if _, err := svc.Process(context.Background(), "approval_v1.pdf", []byte("raw")); err != nil {
		t.Fatalf("first Process: %v", err)
	}
	result, err := svc.Process(context.Background(), "approval_v2.pdf", []byte("raw"))
	if err != nil {
		t.Fatalf("second Process: %v", err)
	}
	if !result.Duplicate {
		t.Fatal("expected duplicate by matching extracted text")
	}
}

func TestServiceProcessEmptyExtraction(t *testing.T) {
	svc := newTestService(NewMemoryRepo(), scriptedLLM{}, "")

	_, err := svc.Process(context.Background(), "blank.png", []byte("raw"))
	if !errors.Is(err, ErrEmptyExtraction) {
		t.Fatalf("expected ErrEmptyExtraction, got %v", err)
	}
}

func TestServiceProcessModelJSONError(t *testing.T) {
	repo := NewMemoryRepo()
	svc := newTestService(repo, scriptedLLM{
		classify:    "invoice",
		extractJSON: "not json at all",
	}, "Invoice #123")

	_, err := svc.Process(context.Background(), "invoice1.pdf", []byte("raw"))
	if !errors.Is(err, ErrModelJSON) {
		t.Fatalf("expected ErrModelJSON, got %v", err)
	}

	docs, _ := repo.ListByType(context.Background(), TypeInvoice)
	if len(docs) != 0 {
		t.Fatal("failed pipeline must not store documents")
	}
}

func TestServiceProcessRejectsTraversalFileName(t *testing.T) {
	svc := newTestService(NewMemoryRepo(), scriptedLLM{classify: "invoice", extractJSON: `{}`}, "text")

	_, err := svc.Process(context.Background(), "../evil.pdf", []byte("raw"))
	if !errors.Is(err, ErrInvalidUpload) {
		t.Fatalf("expected ErrInvalidUpload, got %v", err)
	}
}

func TestServiceProcessEmbedderFailureAborts(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{
		Extractor: fakeExtractor{text: "Invoice #123"},
		LLM:       scriptedLLM{classify: "invoice", extractJSON: `{}`},
		Embedder:  fakeEmbedder{err: errors.New("embedding service down")},
		Repo:      repo,
	}

	_, err := svc.Process(context.Background(), "invoice1.pdf", []byte("raw"))
	if err == nil {
		t.Fatal("expected embedder error")
	}
	docs, _ := repo.ListByType(context.Background(), TypeInvoice)
	if len(docs) != 0 {
		t.Fatal("embedder failure must not store documents")
	}
}

func TestServiceListUnknownType(t *testing.T) {
	svc := newTestService(NewMemoryRepo(), scriptedLLM{}, "")
	_, _, err := svc.List(context.Background(), "receipt")
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestServiceListNormalizesType(t *testing.T) {
	repo := NewMemoryRepo()
	if _, err := repo.Insert(context.Background(), Document{
		FileName:      "po.pdf",
		Type:          TypePurchaseOrder,
		ExtractedText: "PO #1",
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	svc := newTestService(repo, scriptedLLM{}, "")
	docType, docs, err := svc.List(context.Background(), "  Purchase_Order ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if docType != TypePurchaseOrder {
		t.Fatalf("docType = %q", docType)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
}

package documents

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory implementation of Repo, used when no database
// is configured and by tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[DocumentType][]Document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[DocumentType][]Document),
	}
}

// FindDuplicate scans the type's collection for a matching file name or text.
func (r *MemoryRepo) FindDuplicate(ctx context.Context, docType DocumentType, fileName, text string) (Document, bool, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.data[docType] {
		if doc.FileName == fileName || doc.ExtractedText == text {
			return doc, true, nil
		}
	}
	return Document{}, false, nil
}

// Insert appends the document in arrival order and assigns its identifier.
func (r *MemoryRepo) Insert(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	doc.ID = uuid.NewString()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[doc.Type] = append(r.data[doc.Type], doc)
	return doc.ID, nil
}

// ListByType returns the type's documents in insert order.
func (r *MemoryRepo) ListByType(ctx context.Context, docType DocumentType) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	docs := make([]Document, len(r.data[docType]))
	copy(docs, r.data[docType])
	return docs, nil
}

var _ Repo = (*MemoryRepo)(nil)

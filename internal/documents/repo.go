package documents

import "context"

// Repo defines persistence operations for processed documents.
type Repo interface {
	// FindDuplicate returns the first stored document of the given type whose
	// file name or extracted text matches.
	FindDuplicate(ctx context.Context, docType DocumentType, fileName, text string) (Document, bool, error)
	// Insert appends a new document and returns its assigned identifier.
	Insert(ctx context.Context, doc Document) (string, error)
	// ListByType returns every stored document of the type in store order.
	ListByType(ctx context.Context, docType DocumentType) ([]Document, error)
}

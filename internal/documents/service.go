package documents

import (
	"bytes"
	"context"
	"fmt"

	"docproc-backend/internal/embedding"
	"docproc-backend/internal/llm"
	"docproc-backend/internal/shared/storage/object"
	"docproc-backend/internal/shared/telemetry"
	"docproc-backend/internal/shared/util"
)

// TextExtractor abstracts file-to-text extraction.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}

// Service runs the extraction pipeline: text extraction, classification,
// structured extraction, embedding, dedup check, insert.
type Service struct {
	Extractor TextExtractor
	LLM       llm.Client
	Embedder  embedding.Embedder
	Repo      Repo
	// Archive optionally retains raw uploads; nil means uploads are
	// discarded after extraction.
	Archive object.ObjectStore
}

// Result is the outcome of a processed upload.
type Result struct {
	Document   Document
	Duplicate  bool
	ExistingID string
}

// Process runs the pipeline for one validated upload. Steps run strictly in
// order and the first failure short-circuits; nothing is written unless every
// upstream step succeeded.
func (s *Service) Process(ctx context.Context, fileName string, data []byte) (Result, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInvalidUpload, err.Error())
	}

	s.archive(ctx, sanitized, data)

	text, err := s.Extractor.Extract(ctx, data, sanitized)
	if err != nil {
		return Result{}, err
	}
	if text == "" {
		return Result{}, ErrEmptyExtraction
	}

	docType := Classify(ctx, s.LLM, text)

	fields, err := ExtractFields(ctx, s.LLM, text)
	if err != nil {
		return Result{}, err
	}

	// Computed before the duplicate check; wasted on duplicates but kept in
	// pipeline order.
	vector, err := s.Embedder.Embed(ctx, text)
	if err != nil {
		return Result{}, err
	}

	existing, found, err := s.Repo.FindDuplicate(ctx, docType, sanitized, text)
	if err != nil {
		return Result{}, err
	}
	if found {
		return Result{
			Duplicate:  true,
			ExistingID: existing.ID,
			Document: Document{
				FileName:      sanitized,
				Type:          docType,
				ExtractedText: text,
				Data:          fields,
			},
		}, nil
	}

	doc := Document{
		FileName:      sanitized,
		Type:          docType,
		ExtractedText: text,
		Data:          fields,
		Embedding:     vector,
	}
	id, err := s.Repo.Insert(ctx, doc)
	if err != nil {
		return Result{}, err
	}
	doc.ID = id
	return Result{Document: doc}, nil
}

// List returns all stored documents for a raw type string.
func (s *Service) List(ctx context.Context, rawType string) (DocumentType, []Document, error) {
	docType, ok := ParseDocumentType(rawType)
	if !ok {
		return "", nil, ErrUnknownType
	}
	docs, err := s.Repo.ListByType(ctx, docType)
	if err != nil {
		return docType, nil, err
	}
	return docType, docs, nil
}

// archive best-effort retains the raw upload; failures are logged, never fatal.
func (s *Service) archive(ctx context.Context, fileName string, data []byte) {
	if s.Archive == nil {
		return
	}
	key, _, _, err := s.Archive.Save(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		telemetry.Warn("upload.archive_failed", map[string]any{
			"file_name": fileName,
			"error":     err.Error(),
		})
		return
	}
	telemetry.Info("upload.archived", map[string]any{
		"file_name":   fileName,
		"storage_key": key,
	})
}

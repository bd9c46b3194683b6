package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// FindDuplicate returns the oldest document of the type matching by file name
// or extracted text.
func (r *PGRepo) FindDuplicate(ctx context.Context, docType DocumentType, fileName, text string) (Document, bool, error) {
	const query = `
SELECT id, file_name, document_type, extracted_text, document_data, created_at
FROM documents
WHERE document_type = $1 AND (file_name = $2 OR extracted_text = $3)
ORDER BY created_at
LIMIT 1`

	var doc Document
	var rawData []byte
	err := r.DB.QueryRowContext(ctx, query, string(docType), fileName, text).Scan(
		&doc.ID,
		&doc.FileName,
		&doc.Type,
		&doc.ExtractedText,
		&rawData,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, false, nil
		}
		return Document{}, false, err
	}
	doc.Data = json.RawMessage(rawData)
	return doc, true, nil
}

// Insert stores a new document and returns its assigned identifier.
func (r *PGRepo) Insert(ctx context.Context, doc Document) (string, error) {
	const query = `
INSERT INTO documents (id, file_name, document_type, extracted_text, document_data, embedding, created_at)
VALUES ($1, $2, $3, $4, $5::jsonb, $6::double precision[], $7)`

	id := uuid.NewString()
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	data := doc.Data
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		id,
		doc.FileName,
		string(doc.Type),
		doc.ExtractedText,
		string(data),
		encodeVector(doc.Embedding),
		createdAt,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ListByType lists documents of the type in creation order, embeddings omitted.
func (r *PGRepo) ListByType(ctx context.Context, docType DocumentType) ([]Document, error) {
	const query = `
SELECT id, file_name, document_type, extracted_text, document_data, created_at
FROM documents
WHERE document_type = $1
ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query, string(docType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var doc Document
		var rawData []byte
		if err := rows.Scan(
			&doc.ID,
			&doc.FileName,
			&doc.Type,
			&doc.ExtractedText,
			&rawData,
			&doc.CreatedAt,
		); err != nil {
			return nil, err
		}
		doc.Data = json.RawMessage(rawData)
		out = append(out, doc)
	}
	return out, rows.Err()
}

// encodeVector renders the embedding as a Postgres array literal. The insert
// casts it back to double precision[].
func encodeVector(vec []float64) string {
	if len(vec) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range vec {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteByte('}')
	return sb.String()
}

var _ Repo = (*PGRepo)(nil)

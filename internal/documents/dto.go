package documents

import "encoding/json"

// StoredResponse is the 201 body for a newly stored document.
type StoredResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	DocumentID    string          `json:"document_id"`
	DocumentType  DocumentType    `json:"document_type"`
	ExtractedText string          `json:"extracted_text"`
	DocumentData  json.RawMessage `json:"document_data"`
}

// DuplicateResponse is the 200 body when an upload matches a stored document.
// DocumentData carries the newly produced, unstored structured data.
type DuplicateResponse struct {
	Warning       string          `json:"warning"`
	ExistingID    string          `json:"existing_id"`
	DocumentType  DocumentType    `json:"document_type"`
	ExtractedText string          `json:"extracted_text"`
	DocumentData  json.RawMessage `json:"document_data"`
}

// ListResponse is the body for type listings. Embeddings are omitted.
type ListResponse struct {
	DocumentType DocumentType   `json:"document_type"`
	Count        int            `json:"count"`
	Documents    []DocumentItem `json:"documents"`
}

// DocumentItem is the outward-facing representation of a stored document.
type DocumentItem struct {
	ID            string          `json:"id"`
	FileName      string          `json:"file_name"`
	DocumentType  DocumentType    `json:"document_type"`
	ExtractedText string          `json:"extracted_text"`
	DocumentData  json.RawMessage `json:"document_data"`
}

func toItem(doc Document) DocumentItem {
	return DocumentItem{
		ID:            doc.ID,
		FileName:      doc.FileName,
		DocumentType:  doc.Type,
		ExtractedText: doc.ExtractedText,
		DocumentData:  doc.Data,
	}
}

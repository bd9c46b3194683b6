package documents

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"docproc-backend/internal/extract"
	"docproc-backend/internal/shared/metrics"
	"docproc-backend/internal/shared/server/respond"
)

const maxUploadSize = 16 << 20 // 16MiB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.extract)
	rg.GET("/:type", h.list)
}

func (h *Handler) extract(c *gin.Context) {
	metrics.IncExtractionStarted()
	start := metrics.NowMillis()

	if c.Request.ContentLength > maxUploadSize {
		metrics.IncExtractionFailed()
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File too large. Maximum size is 16MB", nil)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.IncExtractionFailed()
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File too large. Maximum size is 16MB", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided", nil)
		return
	}
	if fileHeader.Filename == "" {
		metrics.IncExtractionFailed()
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file selected", nil)
		return
	}
	if !extract.AllowedFile(fileHeader.Filename) {
		metrics.IncExtractionFailed()
		respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid file type. Allowed: png, jpg, jpeg, pdf", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		metrics.IncExtractionFailed()
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		metrics.IncExtractionFailed()
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File too large. Maximum size is 16MB", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	result, err := h.Svc.Process(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		metrics.IncExtractionFailed()
		switch {
		case errors.Is(err, ErrInvalidUpload):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrEmptyExtraction):
			respond.Error(c, http.StatusBadRequest, "empty_extraction", "No text could be extracted from the file", nil)
		case errors.Is(err, ErrModelJSON):
			respond.Error(c, http.StatusInternalServerError, "model_json_error", "Invalid JSON response from AI model", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "processing_error", fmt.Sprintf("Processing error: %s", err.Error()), nil)
		}
		return
	}

	metrics.ObserveExtractionDurationMs(metrics.NowMillis() - start)
	c.Set("documentType", string(result.Document.Type))

	if result.Duplicate {
		metrics.IncExtractionDuplicate()
		c.Set("documentId", result.ExistingID)
		respond.JSON(c, http.StatusOK, DuplicateResponse{
			Warning:       "Document already exists in database",
			ExistingID:    result.ExistingID,
			DocumentType:  result.Document.Type,
			ExtractedText: result.Document.ExtractedText,
			DocumentData:  result.Document.Data,
		})
		return
	}

	metrics.IncExtractionStored()
	c.Set("documentId", result.Document.ID)
	respond.JSON(c, http.StatusCreated, StoredResponse{
		Success:       true,
		Message:       fmt.Sprintf("%s processed successfully", result.Document.Type.Title()),
		DocumentID:    result.Document.ID,
		DocumentType:  result.Document.Type,
		ExtractedText: result.Document.ExtractedText,
		DocumentData:  result.Document.Data,
	})
}

func (h *Handler) list(c *gin.Context) {
	docType, docs, err := h.Svc.List(c.Request.Context(), c.Param("type"))
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownType):
			respond.Error(c, http.StatusBadRequest, "unknown_type", "Invalid document type", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "store_error", fmt.Sprintf("Database error: %s", err.Error()), nil)
		}
		return
	}

	items := make([]DocumentItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, toItem(doc))
	}

	c.Set("documentType", string(docType))
	respond.OK(c, ListResponse{
		DocumentType: docType,
		Count:        len(items),
		Documents:    items,
	})
}

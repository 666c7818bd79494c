package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/receipt-reader-api/internal/extractor"
	"github.com/BerylCAtieno/receipt-reader-api/internal/models"
	"github.com/BerylCAtieno/receipt-reader-api/internal/services"
	"github.com/BerylCAtieno/receipt-reader-api/internal/utils"
	"github.com/gorilla/mux"
)

type ReceiptHandler struct {
	service     services.ReceiptService
	logger      *utils.Logger
	maxFileSize int64
}

func NewReceiptHandler(service services.ReceiptService, logger *utils.Logger, maxFileSize int64) *ReceiptHandler {
	return &ReceiptHandler{
		service:     service,
		logger:      logger,
		maxFileSize: maxFileSize,
	}
}

func (h *ReceiptHandler) UploadReceipt(w http.ResponseWriter, r *http.Request) {
	data, filename, contentType, err := h.readFile(w, r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	var groupID int64
	if v := r.FormValue("group_id"); v != "" {
		groupID, err = strconv.ParseInt(v, 10, 64)
		if err != nil || groupID < 0 {
			h.respondError(w, utils.NewBadRequestError("group_id must be a non-negative integer"))
			return
		}
	}

	resp, err := h.service.UploadReceipt(r.Context(), &models.UploadRequest{
		File:        data,
		Filename:    filename,
		ContentType: contentType,
		GroupID:     groupID,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

// ParseReceipt parses an upload and returns the result without storing it.
func (h *ReceiptHandler) ParseReceipt(w http.ResponseWriter, r *http.Request) {
	data, _, contentType, err := h.readFile(w, r)
	if err != nil {
		h.respondError(w, err)
		return
	}

	result, err := h.service.ParseReceipt(r.Context(), &models.ParseRequest{
		File:        data,
		ContentType: contentType,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"receipt": result.Document(),
		"units":   result.Units,
	})
}

func (h *ReceiptHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	var groupID *int64
	if v := r.URL.Query().Get("group_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.respondError(w, utils.NewBadRequestError("group_id must be an integer"))
			return
		}
		groupID = &id
	}

	receipts, err := h.service.ListReceipts(r.Context(), groupID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.ReceiptListResponse{Receipts: receipts})
}

func (h *ReceiptHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	rec, err := h.service.GetReceipt(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, rec)
}

func (h *ReceiptHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	items, err := h.service.GetItems(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, models.ItemsResponse{ReceiptID: id, Items: items})
}

// GetUnitTable serves the per-unit projection as CSV, or JSON with ?format=json.
func (h *ReceiptHandler) GetUnitTable(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	table, err := h.service.GetUnitTable(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		h.respondJSON(w, http.StatusOK, table)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id+".csv"))
	w.WriteHeader(http.StatusOK)
	if err := table.WriteCSV(w); err != nil {
		h.logger.With("id", id).Error("Failed to write CSV response", "error", err)
	}
}

// GetDocument serves the original upload of a stored receipt.
func (h *ReceiptHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.service.GetDocument(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	contentType := doc.ContentType
	if contentType == "" {
		contentType = extractor.DetectContentType(doc.Data)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		h.logger.With("id", id).Error("Failed to write document response", "error", err)
	}
}

func (h *ReceiptHandler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteReceipt(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readFile pulls the "file" part out of a multipart upload, enforcing the
// size limit.
func (h *ReceiptHandler) readFile(w http.ResponseWriter, r *http.Request) ([]byte, string, string, error) {
	limitMsg := fmt.Sprintf("File size exceeds %dMB limit", h.maxFileSize>>20)

	if r.ContentLength > h.maxFileSize {
		return nil, "", "", utils.NewBadRequestError(limitMsg)
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return nil, "", "", utils.NewBadRequestError(limitMsg)
		}
		return nil, "", "", utils.NewBadRequestError("Invalid form data")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", utils.NewBadRequestError("No file provided")
	}
	defer file.Close()

	contentType := determineContentType(header.Filename, header.Header.Get("Content-Type"))

	h.logger.Info("Receipt upload attempt",
		"filename", header.Filename,
		"reported_content_type", header.Header.Get("Content-Type"),
		"determined_content_type", contentType)

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		return nil, "", "", utils.NewInternalError("Failed to read file")
	}

	if int64(len(data)) > h.maxFileSize {
		return nil, "", "", utils.NewBadRequestError(limitMsg)
	}

	if len(data) == 0 {
		return nil, "", "", utils.NewBadRequestError("Uploaded file is empty")
	}

	return data, header.Filename, contentType, nil
}

// determineContentType prefers the filename extension over the reported
// content type, which browsers often get wrong for PDFs.
func determineContentType(filename, headerContentType string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractor.ContentTypePDF
	case ".txt":
		return extractor.ContentTypeText
	}

	if i := strings.Index(headerContentType, ";"); i >= 0 {
		headerContentType = strings.TrimSpace(headerContentType[:i])
	}
	return headerContentType
}

func (h *ReceiptHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *ReceiptHandler) respondError(w http.ResponseWriter, err error) {
	status := utils.StatusCode(err)
	message := "Internal server error"

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("Request error", "status", status, "error", err)
	} else {
		h.logger.Warn("Request error", "status", status, "error", message)
	}

	h.respondJSON(w, status, map[string]string{"error": message})
}

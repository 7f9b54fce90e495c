package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/config"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/middleware"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/model"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/normalize"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/pkg/logger"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/service"
)

const maxUploadSize = 10 << 20 // 10MB

type QuittanceHandler struct {
	config    *config.Config
	store     service.Store
	processor *service.QuittanceProcessor
	archive   *service.ArchiveService
}

func NewQuittanceHandler(cfg *config.Config, store service.Store, processor *service.QuittanceProcessor, archive *service.ArchiveService) *QuittanceHandler {
	return &QuittanceHandler{
		config:    cfg,
		store:     store,
		processor: processor,
		archive:   archive,
	}
}

// Upload accepts a quittance image, creates the record and runs extraction
// and normalization synchronously. The record exists before the OCR call, so
// a failed extraction still leaves an inspectable failed record.
func (h *QuittanceHandler) Upload(c *gin.Context) {
	userID := middleware.GetUserID(c)
	ctx := c.Request.Context()

	// Get file from form
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	companyName := c.PostForm("company_name")
	if companyName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company name is required"})
		return
	}

	// Validate that the company exists by name
	company := h.config.FindCompany(companyName)
	if company == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company not found"})
		return
	}

	// Only image uploads are accepted
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are allowed"})
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	// Create the initial record before calling the OCR service
	now := time.Now()
	quittance := &model.Quittance{
		ID:        uuid.New().String(),
		UserID:    userID,
		CompanyID: company.ID,
		Status:    model.StatusProcessing,
		Code:      fmt.Sprintf("temp_%d", now.UnixMilli()),
		Currency:  normalize.DefaultCurrency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.store.Save(quittance); err != nil {
		logger.Error(ctx, "failed to create quittance", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload quittance"})
		return
	}

	// Keep a copy of the original scan; extraction proceeds even if this fails
	if h.archive != nil {
		objectName := fmt.Sprintf("%s/%s/%s", company.ID, quittance.ID, header.Filename)
		if err := h.archive.ArchiveImage(ctx, objectName, data, contentType); err != nil {
			logger.Warn(ctx, "failed to archive upload", "quittance_id", quittance.ID, "error", err)
		} else {
			quittance.ArchiveObjectID = objectName
		}
	}

	logger.Info(ctx, "sending quittance for extraction",
		"quittance_id", quittance.ID,
		"company", companyName,
	)

	if err := h.processor.Process(ctx, quittance, data, header.Filename, companyName); err != nil {
		var extractionErr *service.ExtractionError
		if errors.As(err, &extractionErr) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":        "Failed to process quittance",
				"quittance_id": extractionErr.QuittanceID,
				"details":      extractionErr.Err.Error(),
			})
			return
		}

		logger.Error(ctx, "quittance processing failed", "quittance_id", quittance.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload quittance"})
		return
	}

	formatUsed, _ := quittance.ExtractedData["format_used"].(string)

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"quittance":      quittance,
		"extracted_data": quittance.ExtractedData,
		"format_used":    formatUsed,
		"message":        fmt.Sprintf("Quittance processed successfully using %s format", formatUsed),
	})
}

// List returns all quittances for the current user
func (h *QuittanceHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	quittances, err := h.store.GetByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quittances"})
		return
	}

	// Return without the audit payload for list view
	result := make([]gin.H, len(quittances))
	for i, q := range quittances {
		result[i] = gin.H{
			"id":            q.ID,
			"company_id":    q.CompanyID,
			"code":          q.Code,
			"status":        q.Status,
			"total_premium": q.TotalPremium,
			"currency":      q.Currency,
			"created_at":    q.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"updated_at":    q.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"quittances": result})
}

// Get returns a single quittance with its audit payload
func (h *QuittanceHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	quittance, err := h.store.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quittance"})
		return
	}
	if quittance == nil || quittance.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quittance not found"})
		return
	}

	c.JSON(http.StatusOK, quittance)
}

// GetStatus returns the processing status of a quittance
func (h *QuittanceHandler) GetStatus(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	quittance, err := h.store.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quittance"})
		return
	}
	if quittance == nil || quittance.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quittance not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            quittance.ID,
		"status":        quittance.Status,
		"error_message": quittance.ErrorMessage,
	})
}

// Delete deletes a quittance and its archived image
func (h *QuittanceHandler) Delete(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id := c.Param("id")

	quittance, err := h.store.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quittance"})
		return
	}
	if quittance == nil || quittance.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quittance not found"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quittance"})
		return
	}

	// Best effort: the archived object may already be gone
	if h.archive != nil && quittance.ArchiveObjectID != "" {
		if err := h.archive.DeleteImage(c.Request.Context(), quittance.ArchiveObjectID); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete archived image", "quittance_id", id, "error", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quittance deleted"})
}

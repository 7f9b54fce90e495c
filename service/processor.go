package service

import (
	"context"
	"fmt"

	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/model"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/normalize"
	"github.com/zayneb-web/OCR-SmartQuittance-Extractor/pkg/logger"
)

// ExtractionError reports an extraction failure for a record that was
// already created. The record ID lets callers point the client at the
// failed record.
type ExtractionError struct {
	QuittanceID string
	Err         error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for quittance %s: %v", e.QuittanceID, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// QuittanceProcessor drives a record through its lifecycle: it calls the OCR
// service, normalizes the extraction payload and commits exactly one
// terminal transition per record, to completed or failed.
type QuittanceProcessor struct {
	ocr   *OCRService
	store Store
}

func NewQuittanceProcessor(ocr *OCRService, store Store) *QuittanceProcessor {
	return &QuittanceProcessor{
		ocr:   ocr,
		store: store,
	}
}

// Process runs extraction and normalization for a record already saved in
// processing state. On OCR failure the record is marked failed with the
// error detail and its canonical fields keep their initialization defaults;
// an *ExtractionError is returned. On success the normalized fields, the
// audit payload and the storage references are committed with status
// completed. A persistence failure on the terminal write is returned as-is.
func (p *QuittanceProcessor) Process(ctx context.Context, q *model.Quittance, file []byte, filename, companyName string) error {
	resp, err := p.ocr.Extract(ctx, file, filename, companyName)
	if err != nil {
		logger.Error(ctx, "OCR extraction failed", "quittance_id", q.ID, "error", err)

		q.Status = model.StatusFailed
		q.ErrorMessage = err.Error()
		if saveErr := p.store.Save(q); saveErr != nil {
			logger.Error(ctx, "failed to save failed quittance", "quittance_id", q.ID, "error", saveErr)
		}
		return &ExtractionError{QuittanceID: q.ID, Err: err}
	}

	logger.Info(ctx, "OCR processing completed", "quittance_id", q.ID, "format_used", resp.FormatUsed)

	result := normalize.Dispatch(resp.FormatUsed, resp.ExtractedData)

	q.ImageURL = resp.StorageURL
	q.StorageObjectID = resp.StorageObjectID
	q.Code = result.Fields.Code
	q.ContractNumber = result.Fields.ContractNumber
	q.Beneficiary = result.Fields.Beneficiary
	q.Branch = result.Fields.Branch
	q.Insurer = result.Fields.Insurer
	q.Policyholder = result.Fields.Policyholder
	q.Currency = result.Fields.Currency
	q.TotalPremium = result.Fields.TotalPremium
	q.ExtractedData = result.Audit
	q.Status = model.StatusCompleted

	if err := p.store.Save(q); err != nil {
		return fmt.Errorf("failed to save quittance %s: %w", q.ID, err)
	}
	return nil
}

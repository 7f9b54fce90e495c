package model

import (
	"time"
)

// Quittance is the canonical record for one processed quittance document,
// independent of which extraction format produced it.
type Quittance struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	CompanyID       string `json:"company_id"`
	ImageURL        string `json:"image_url"`
	StorageObjectID string `json:"storage_object_id"`
	ArchiveObjectID string `json:"archive_object_id,omitempty"`
	Status          string `json:"status"` // processing, completed, failed

	// Canonical business fields
	Code           string  `json:"code"`
	ContractNumber string  `json:"contract_number"`
	Beneficiary    string  `json:"beneficiary"`
	Branch         string  `json:"branch"`
	Insurer        string  `json:"insurer"`
	Policyholder   string  `json:"policyholder"`
	Currency       string  `json:"currency"`
	TotalPremium   float64 `json:"total_premium"`

	// ExtractedData keeps every field the matched normalizer recognized,
	// tagged with the format identifier used. Immutable once written.
	ExtractedData map[string]any `json:"extracted_data,omitempty"`
	ErrorMessage  string         `json:"error_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Quittance status constants. A record starts in processing and transitions
// exactly once, to completed or failed.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

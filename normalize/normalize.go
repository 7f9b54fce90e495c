package normalize

import (
	"fmt"
	"time"
)

// DefaultCurrency is applied whenever a format does not carry a usable
// currency of its own.
const DefaultCurrency = "dinar"

// Fields is the canonical shape every extraction format is mapped onto.
type Fields struct {
	Code           string  `json:"code"`
	ContractNumber string  `json:"contract_number"`
	Beneficiary    string  `json:"beneficiary"`
	Branch         string  `json:"branch"`
	Insurer        string  `json:"insurer"`
	Policyholder   string  `json:"policyholder"`
	Currency       string  `json:"currency"`
	TotalPremium   float64 `json:"total_premium"`
}

// Result bundles the canonical fields with the audit payload that retains
// every source field the matched normalizer recognized. The audit payload
// always carries the format identifier under "format_used".
type Result struct {
	Fields Fields
	Audit  map[string]any
}

// normalizer maps one extraction format onto the canonical shape.
type normalizer interface {
	normalize(payload map[string]any) Result
}

// getString reads a string value from the payload, "" when the key is absent
// or holds a non-string value.
func getString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

// getMap reads a nested object from the payload, nil when absent.
func getMap(payload map[string]any, key string) map[string]any {
	if v, ok := payload[key].(map[string]any); ok {
		return v
	}
	return nil
}

// orPlaceholder returns the code unchanged, or a synthesized temp_<millis>
// placeholder when the source had no quittance number. The timestamp is a
// weak uniqueness hint, kept for compatibility with existing records.
func orPlaceholder(code string) string {
	if code == "" {
		return fmt.Sprintf("temp_%d", time.Now().UnixMilli())
	}
	return code
}

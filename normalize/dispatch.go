package normalize

// Format identifiers returned by the OCR service.
const (
	FormatHP0012 = "hp0012_custom"
	FormatCarte  = "carte_assurances"
	FormatLegacy = "format_1" // handled by the default normalizer
)

// Dispatch selects the normalizer matching the format identifier and runs it
// over the payload. Any identifier that is not an exact match for a known
// format, including the empty string, falls back to the default normalizer,
// so an unexpected identifier can never abort processing. The audit payload
// is tagged with the identifier that was actually supplied.
func Dispatch(formatID string, payload map[string]any) Result {
	var n normalizer
	switch formatID {
	case FormatHP0012:
		n = hp0012Normalizer{}
	case FormatCarte:
		n = carteNormalizer{}
	default:
		n = defaultNormalizer{}
	}

	result := n.normalize(payload)
	result.Audit["format_used"] = formatID
	return result
}

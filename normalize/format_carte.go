package normalize

// carteNormalizer maps the CARTE ASSURANCES quittance layout. Canonical
// fields follow the same mapping as HP0012 and the currency is always dinar;
// the audit payload keeps every source field verbatim.
type carteNormalizer struct{}

func (carteNormalizer) normalize(payload map[string]any) Result {
	fields := Fields{
		Code:           orPlaceholder(getString(payload, "numero_quittance")),
		ContractNumber: getString(payload, "num_contrat"),
		Beneficiary:    getString(payload, "assure"),
		Branch:         getString(payload, "agence"),
		Insurer:        getString(payload, "assurance"),
		Policyholder:   getString(payload, "souscripteur"),
		Currency:       DefaultCurrency,
		TotalPremium:   ParseAmount(getString(payload, "prime_totale")),
	}

	audit := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		audit[k] = v
	}

	return Result{Fields: fields, Audit: audit}
}

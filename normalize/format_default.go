package normalize

// defaultNormalizer maps the original quittance layout and doubles as the
// fallback for any format identifier the dispatcher does not recognize.
// Unlike the other formats it trusts the source currency when present. Some
// source keys contain spaces; they come straight from the OCR box labels.
type defaultNormalizer struct{}

func (defaultNormalizer) normalize(payload map[string]any) Result {
	assure := getMap(payload, "assure")

	currency := getString(payload, "devise")
	if currency == "" {
		currency = DefaultCurrency
	}

	fields := Fields{
		Code:           orPlaceholder(getString(payload, "code")),
		ContractNumber: getString(payload, "num_contrat"),
		Beneficiary:    getString(assure, "nom et prenom"),
		Branch:         getString(payload, "agence"),
		Insurer:        getString(payload, "assurance"),
		Policyholder:   getString(payload, "souscripteur"),
		Currency:       currency,
		TotalPremium:   ParseAmount(getString(payload, "prime")),
	}

	periode := getMap(payload, "Periode d'assurance")
	taxe := getMap(payload, "taxe")

	audit := map[string]any{
		"num_contrat": getString(payload, "num_contrat"),
		"periode_assurance": map[string]any{
			"date_debut": getString(periode, "date_debut"),
			"date_fin":   getString(periode, "date_fin"),
		},
		"numero_quittance": getString(payload, "numero quittance"),
		"risque":           getString(payload, "risque"),
		"prime":            getString(payload, "prime"),
		"code":             getString(payload, "code"),
		"cout_contrat":     getString(payload, "COUT DE CONTRAT"),
		"assure": map[string]any{
			"nom_et_prenom": getString(assure, "nom et prenom"),
			"adresse":       getString(assure, "adresse"),
			"code_postal":   getString(assure, "code postal"),
		},
		"per": getString(payload, "PER"),
		"taxe": map[string]any{
			"taxe": getString(taxe, "taxe"),
			"fg":   getString(taxe, "fg"),
		},
		"somme_a_payer": getString(payload, "somme a payer"),
		"total":         getString(payload, "total"),
	}

	return Result{Fields: fields, Audit: audit}
}

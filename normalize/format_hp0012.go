package normalize

// hp0012Normalizer maps the HP0012 custom quittance layout. The layout has
// no currency cell, so the currency is always dinar. The audit payload keeps
// the full field inventory of the layout, including the insurance period and
// vehicle sections.
type hp0012Normalizer struct{}

func (hp0012Normalizer) normalize(payload map[string]any) Result {
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

	periode := getMap(payload, "periode_assurance")

	audit := map[string]any{
		// Identity
		"assurance":        getString(payload, "assurance"),
		"numero_quittance": getString(payload, "numero_quittance"),
		"agence":           getString(payload, "agence"),
		"souscripteur":     getString(payload, "souscripteur"),
		"adresse":          getString(payload, "adresse"),
		"ville":            getString(payload, "ville"),
		"code_postal":      getString(payload, "code_postal"),
		"assure":           getString(payload, "assure"),
		"num_contrat":      getString(payload, "num_contrat"),
		"fractionnement":   getString(payload, "fractionnement"),
		"numero_aliment":   getString(payload, "numero_aliment"),

		"periode_assurance": map[string]any{
			"date_debut": getString(periode, "date_debut"),
			"date_fin":   getString(periode, "date_fin"),
		},

		// Financial
		"prime_base":    getString(payload, "prime_base"),
		"prime_annexe":  getString(payload, "prime_annexe"),
		"frais":         getString(payload, "frais"),
		"taxe_base":     getString(payload, "taxe_base"),
		"taxes_annexes": getString(payload, "taxes_annexes"),
		"fpcsr":         getString(payload, "fpcsr"),
		"fpac":          getString(payload, "fpac"),
		"fga":           getString(payload, "fga"),
		"prime_totale":  getString(payload, "prime_totale"),

		// Vehicle
		"categorie_risque": getString(payload, "categorie_risque"),
		"immatriculation":  getString(payload, "immatriculation"),
		"marque":           getString(payload, "marque"),
		"type_vehicule":    getString(payload, "type_vehicule"),
		"date_emission":    getString(payload, "date_emission"),

		"source_file": getString(payload, "source_file"),
	}

	return Result{Fields: fields, Audit: audit}
}

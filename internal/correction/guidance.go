package correction

// FieldGuidance is the instruction block embedded in a correction prompt:
// what values of a field type should look like and what usually goes wrong
// with them.
type FieldGuidance struct {
	Description  string `json:"description"`
	Patterns     string `json:"patterns"`
	CommonErrors string `json:"common_errors"`
	Examples     string `json:"examples"`
}

// GuidanceOverride carries caller-supplied replacements for individual
// guidance fields, typically company-specific. Nil fields keep the
// catalog value.
type GuidanceOverride struct {
	Description  *string `json:"description,omitempty"`
	Patterns     *string `json:"patterns,omitempty"`
	CommonErrors *string `json:"common_errors,omitempty"`
	Examples     *string `json:"examples,omitempty"`
}

// fieldGuidanceCatalog is the static per-type guidance. Types without a
// dedicated entry (address, package_code, weight) use the "other" entry.
var fieldGuidanceCatalog = map[FieldType]FieldGuidance{
	FieldVessel: {
		Description:  "Ship/vessel names for maritime transport",
		Patterns:     "M.V., M.T., M.S., proper vessel names",
		CommonErrors: "Container codes instead of names, emails, companies, too short values",
		Examples:     "M.V. ISABELLE G, Serenity Ibtihaj, Champion Pomer",
	},
	FieldCargoControl: {
		Description:  "Cargo Control Numbers (CCN)",
		Patterns:     "Alphanumeric format, usually 10-14 characters",
		CommonErrors: "Unwanted spaces, letter O instead of 0, dashes",
		Examples:     "22NN124299, 5125PARS552243, 2205788152245",
	},
	FieldPONumber: {
		Description:  "Purchase Order numbers",
		Patterns:     "Alphanumeric, may contain legitimate dashes/spaces",
		CommonErrors: "Multiple spaces, commas, words \"ORDER\" or \"NUMBER\"",
		Examples:     "K137-25, W065616000, 478103",
	},
	FieldQuantity: {
		Description:  "Merchandise quantities",
		Patterns:     "Numbers with units (CARTONS, PALLETS, KG, MT, etc.)",
		CommonErrors: "Abnormally large quantities, broken decimal format",
		Examples:     "381 Cartons, 19.552 MMT, 2950 Cartons",
	},
	FieldCurrency: {
		Description:  "Currency codes",
		Patterns:     "ISO 3-letter codes (USD, EUR, CAD, etc.)",
		CommonErrors: "Full names instead of codes, symbols",
		Examples:     "USD, CAD, EUR, GBP, THB",
	},
	FieldCountry: {
		Description:  "Country codes",
		Patterns:     "ISO 2-letter codes preferred",
		CommonErrors: "Full country names instead of codes",
		Examples:     "US, CA, CN, TH, BE",
	},
	FieldCompanyName: {
		Description:  "Company names (shipper, consignee, vendor)",
		Patterns:     "Proper company names",
		CommonErrors: "Mixed emails/URLs, contact information",
		Examples:     "Clean company names without contact info",
	},
	FieldOther: {
		Description:  "General field validation",
		Patterns:     "Appropriate format for field type",
		CommonErrors: "Format inconsistencies, contamination",
		Examples:     "Clean, properly formatted values",
	},
}

// ResolveGuidance looks up the catalog entry for a field type and applies
// the override on top, field by field. The catalog itself is never
// mutated.
func ResolveGuidance(fieldType FieldType, override *GuidanceOverride) FieldGuidance {
	guidance, ok := fieldGuidanceCatalog[fieldType]
	if !ok {
		guidance = fieldGuidanceCatalog[FieldOther]
	}
	if override == nil {
		return guidance
	}
	if override.Description != nil {
		guidance.Description = *override.Description
	}
	if override.Patterns != nil {
		guidance.Patterns = *override.Patterns
	}
	if override.CommonErrors != nil {
		guidance.CommonErrors = *override.CommonErrors
	}
	if override.Examples != nil {
		guidance.Examples = *override.Examples
	}
	return guidance
}

package correction

// CorrectionType labels what kind of fix the model applied to a value.
type CorrectionType string

const (
	CorrectionEmailContamination      CorrectionType = "email_contamination"
	CorrectionPhoneContamination      CorrectionType = "phone_contamination"
	CorrectionWebsiteContamination    CorrectionType = "website_contamination"
	CorrectionPrefixRemoval           CorrectionType = "prefix_removal"
	CorrectionFormatStandardization   CorrectionType = "format_standardization"
	CorrectionCurrencyStandardization CorrectionType = "currency_standardization"
	CorrectionQuantityFormatting      CorrectionType = "quantity_formatting"
	CorrectionNone                    CorrectionType = "no_correction"
)

// ParseCorrectionType maps a model-returned label onto the closed set.
// Anything unrecognized, including the empty string, collapses to
// CorrectionNone.
func ParseCorrectionType(s string) CorrectionType {
	switch CorrectionType(s) {
	case CorrectionEmailContamination,
		CorrectionPhoneContamination,
		CorrectionWebsiteContamination,
		CorrectionPrefixRemoval,
		CorrectionFormatStandardization,
		CorrectionCurrencyStandardization,
		CorrectionQuantityFormatting,
		CorrectionNone:
		return CorrectionType(s)
	}
	return CorrectionNone
}

// CorrectionVerdict is the structured answer for one field value.
// CorrectedValue is nil when no correction is needed.
type CorrectionVerdict struct {
	FieldName        string         `json:"field_name"`
	OriginalValue    string         `json:"original_value"`
	CorrectionNeeded bool           `json:"correction_needed"`
	CorrectedValue   *string        `json:"corrected_value"`
	CorrectionType   CorrectionType `json:"correction_type"`
	Confidence       float64        `json:"confidence"`
	Reasoning        string         `json:"reasoning"`
}

// FrequentCorrection is one historical correction with how often it
// recurred, the input unit for guidance synthesis.
type FrequentCorrection struct {
	FieldName      string `json:"field_name"`
	OriginalValue  string `json:"original_value"`
	CorrectedValue string `json:"corrected_value"`
	Frequency      int    `json:"frequency"`
}

// PatternDetected is one systematic pattern the model found across
// historical corrections.
type PatternDetected struct {
	FieldName   string   `json:"field_name"`
	PatternType string   `json:"pattern_type"`
	Description string   `json:"description"`
	Examples    []string `json:"examples"`
	Frequency   int      `json:"frequency"`
	Confidence  float64  `json:"confidence"`
}

// GuidanceSynthesis is the full result of guidance synthesis for one
// company.
type GuidanceSynthesis struct {
	CompanyID                string                   `json:"company_id"`
	AnalysisSummary          string                   `json:"analysis_summary"`
	PatternsDetected         []PatternDetected        `json:"patterns_detected"`
	ProposedSpecificGuidance map[string]FieldGuidance `json:"proposed_specific_guidance"`
	Confidence               float64                  `json:"confidence"`
	Recommendations          string                   `json:"recommendations"`
}

// ValidationExample is one labeled test case for pattern validation.
// ShouldIntegrate and Reason are ground truth and never shown to the
// model.
type ValidationExample struct {
	FieldName       string `json:"field_name"`
	OriginalValue   string `json:"original_value"`
	CorrectedValue  string `json:"corrected_value"`
	ShouldIntegrate bool   `json:"should_integrate"`
	Reason          string `json:"reason"`
}

// ValidationVerdict is the model's integrate/ignore call for one example.
type ValidationVerdict struct {
	FieldName       string  `json:"field_name"`
	ShouldIntegrate bool    `json:"should_integrate"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
}

// ValidationSummary scores the model's predictions against ground truth.
type ValidationSummary struct {
	Accuracy           float64             `json:"accuracy"`
	CorrectPredictions int                 `json:"correct_predictions"`
	TotalPredictions   int                 `json:"total_predictions"`
	Predictions        []ValidationVerdict `json:"predictions"`
	Summary            string              `json:"summary"`
}

// BatchItem is one field value in a batch correction request.
type BatchItem struct {
	FieldName        string            `json:"field_name"`
	CurrentValue     string            `json:"current_value"`
	SpecificGuidance *GuidanceOverride `json:"specific_guidance,omitempty"`
}

// BatchResult aggregates a whole batch run. Results holds one verdict per
// input item, in input order.
type BatchResult struct {
	TotalItems      int                 `json:"total_items"`
	CorrectionsMade int                 `json:"corrections_made"`
	Results         []CorrectionVerdict `json:"results"`
	ProcessingTime  float64             `json:"processing_time"`
	CompanyID       string              `json:"company_id,omitempty"`
}

package correction

import (
	"fmt"
	"strings"
)

// maxGuidanceCorrections caps how many historical corrections get embedded
// in a guidance prompt, keeping prompt size bounded for large companies.
const maxGuidanceCorrections = 20

const correctionPromptTemplate = `You are an expert data quality validator for shipping/logistics data extraction.

FIELD ANALYSIS:
- Field Name: %s
- Field Type: %s
- Current Value: "%s"

FIELD GUIDANCE:
Description: %s
Expected Patterns: %s
Common Errors: %s
Examples: %s

TASK:
Analyze if the current value needs correction based on the field guidance.

RESPONSE FORMAT:
Return ONLY a JSON object with this exact structure:
{
  "correction_needed": boolean,
  "corrected_value": "corrected value or null if no correction needed",
  "correction_type": "email_contamination|phone_contamination|website_contamination|prefix_removal|format_standardization|currency_standardization|quantity_formatting|no_correction",
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation of the decision"
}

IMPORTANT:
- Be conservative: only suggest corrections when clearly justified
- Preserve legitimate formatting when possible
- Focus on removing contamination (emails, phones, websites) and standardizing formats
- If no correction is needed, set correction_needed to false and corrected_value to null`

// BuildCorrectionPrompt renders the single-field correction prompt from
// the already-resolved guidance.
func BuildCorrectionPrompt(fieldName string, fieldType FieldType, currentValue string, guidance FieldGuidance) string {
	return fmt.Sprintf(correctionPromptTemplate,
		fieldName,
		fieldType,
		currentValue,
		guidance.Description,
		guidance.Patterns,
		guidance.CommonErrors,
		guidance.Examples,
	)
}

const guidancePromptTemplate = `You are an expert in data quality pattern detection for automated correction systems.

TASK: Analyze the frequent corrections to build company-specific guidance for '%s'.

FREQUENT CORRECTIONS:
%s
PATTERN DETECTION CRITERIA:
- Systematic formatting issues (prefixes, suffixes, standardization)
- Consistent contamination removal (emails, phones, URLs)
- Repeatable transformation rules
- High frequency indicates systematic nature

IMPORTANT:
- Only consider corrections that reveal systematic PATTERNS
- Ignore isolated or one-off corrections (proper names, unique values)
- Focus on recurring errors that can be predicted and avoided

RESPONSE FORMAT (JSON ONLY):
{
  "company_id": "%s",
  "analysis_summary": "summary of the detected patterns",
  "patterns_detected": [
    {
      "field_name": "field name",
      "pattern_type": "email_contamination|phone_contamination|prefix_removal|format_standardization",
      "description": "clear pattern description",
      "examples": ["example 1", "example 2"],
      "frequency": number,
      "confidence": 0.0-1.0
    }
  ],
  "proposed_specific_guidance": {
    "field_name": {
      "description": "updated description",
      "patterns": "updated patterns",
      "common_errors": "updated common errors",
      "examples": "updated examples"
    }
  },
  "confidence": 0.0-1.0,
  "recommendations": "recommendations for applying this guidance"
}`

// BuildGuidancePrompt renders the guidance-synthesis prompt over at most
// maxGuidanceCorrections historical corrections, enumerated 1-based with
// their recurrence counts.
func BuildGuidancePrompt(companyID string, corrections []FrequentCorrection) string {
	if len(corrections) > maxGuidanceCorrections {
		corrections = corrections[:maxGuidanceCorrections]
	}
	var lines strings.Builder
	for i, c := range corrections {
		lines.WriteString(fmt.Sprintf("%d. Field: %s\n", i+1, c.FieldName))
		lines.WriteString(fmt.Sprintf("   Original: \"%s\"\n", c.OriginalValue))
		lines.WriteString(fmt.Sprintf("   Corrected: \"%s\"\n", c.CorrectedValue))
		lines.WriteString(fmt.Sprintf("   Frequency: %d times\n", c.Frequency))
	}
	return fmt.Sprintf(guidancePromptTemplate, companyID, lines.String(), companyID)
}

const validationPromptTemplate = `You are an expert in data quality pattern validation for shipping/logistics systems.

TASK: For each test example below, decide whether the correction should be integrated into systematic guidance.

DECISION CRITERIA:
- INTEGRATE if the correction reveals a systematic pattern that would help future extractions
- IGNORE if the correction is specific/unique and will not help with other cases

Examples of patterns to INTEGRATE:
- Email/phone contamination removal
- Prefix removal (PO:, ORDER:, etc.)
- Format standardization (currency codes, country codes)
- Systematic formatting issues

Examples to IGNORE:
- Specific name corrections
- Unique value replacements
- One-off fixes

TEST EXAMPLES:
%s
RESPONSE FORMAT (JSON ONLY):
{
  "predictions": [
    {
      "field_name": "field name",
      "should_integrate": true/false,
      "confidence": 0.0-1.0,
      "reasoning": "brief explanation"
    }
  ],
  "overall_accuracy": 0.0-1.0,
  "summary": "validation summary"
}

Return one prediction per test example, in the same order.`

// BuildValidationPrompt renders the pattern-validation prompt covering all
// examples in a single call. Ground-truth labels and reasons stay out of
// the prompt.
func BuildValidationPrompt(examples []ValidationExample) string {
	var lines strings.Builder
	for i, ex := range examples {
		lines.WriteString(fmt.Sprintf("%d. Field: %s\n", i+1, ex.FieldName))
		lines.WriteString(fmt.Sprintf("   Original: \"%s\"\n", ex.OriginalValue))
		lines.WriteString(fmt.Sprintf("   Corrected: \"%s\"\n", ex.CorrectedValue))
	}
	return fmt.Sprintf(validationPromptTemplate, lines.String())
}

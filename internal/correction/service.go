package correction

import (
	"context"
	"fmt"
	"log"
)

// Gateway is the single point of contact with the external model. Invoke
// sends one prompt and returns the raw response text.
type Gateway interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Service runs the correction pipeline: classify the field, resolve its
// guidance, build a prompt, call the model and normalize the answer into a
// typed result. It holds no mutable state and is safe for concurrent use.
type Service struct {
	gateway Gateway
}

func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// Correct asks the model whether a single field value needs correction.
// Missing or mistyped keys in the model's answer fall back to safe
// defaults; only gateway and parse failures surface as errors.
func (s *Service) Correct(ctx context.Context, fieldName, currentValue string, override *GuidanceOverride) (CorrectionVerdict, error) {
	fieldType := ClassifyField(fieldName)
	guidance := ResolveGuidance(fieldType, override)
	prompt := BuildCorrectionPrompt(fieldName, fieldType, currentValue, guidance)

	responseText, err := s.gateway.Invoke(ctx, prompt)
	if err != nil {
		return CorrectionVerdict{}, err
	}
	payload, err := parseModelJSON(responseText)
	if err != nil {
		return CorrectionVerdict{}, err
	}

	return CorrectionVerdict{
		FieldName:        fieldName,
		OriginalValue:    currentValue,
		CorrectionNeeded: boolField(payload, "correction_needed"),
		CorrectedValue:   optionalStringField(payload, "corrected_value"),
		CorrectionType:   ParseCorrectionType(stringField(payload, "correction_type")),
		Confidence:       floatField(payload, "confidence"),
		Reasoning:        stringField(payload, "reasoning"),
	}, nil
}

// BuildGuidance synthesizes company-specific guidance from historical
// corrections. The model's own echo of the company id wins when present;
// otherwise the request's id is kept.
func (s *Service) BuildGuidance(ctx context.Context, companyID string, corrections []FrequentCorrection) (GuidanceSynthesis, error) {
	log.Printf("guidance synthesis company=%s corrections=%d", companyID, len(corrections))
	prompt := BuildGuidancePrompt(companyID, corrections)

	responseText, err := s.gateway.Invoke(ctx, prompt)
	if err != nil {
		return GuidanceSynthesis{}, err
	}
	payload, err := parseModelJSON(responseText)
	if err != nil {
		return GuidanceSynthesis{}, err
	}

	synthesis := GuidanceSynthesis{
		CompanyID:                companyID,
		AnalysisSummary:          stringField(payload, "analysis_summary"),
		PatternsDetected:         parsePatternsDetected(payload),
		ProposedSpecificGuidance: parseProposedGuidance(payload),
		Confidence:               floatField(payload, "confidence"),
		Recommendations:          stringField(payload, "recommendations"),
	}
	if echoed := stringField(payload, "company_id"); echoed != "" {
		synthesis.CompanyID = echoed
	}
	return synthesis, nil
}

func parsePatternsDetected(payload map[string]any) []PatternDetected {
	raw, ok := payload["patterns_detected"].([]any)
	if !ok {
		return nil
	}
	patterns := make([]PatternDetected, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		patterns = append(patterns, PatternDetected{
			FieldName:   stringField(m, "field_name"),
			PatternType: stringField(m, "pattern_type"),
			Description: stringField(m, "description"),
			Examples:    stringSliceField(m, "examples"),
			Frequency:   intField(m, "frequency"),
			Confidence:  floatField(m, "confidence"),
		})
	}
	return patterns
}

func parseProposedGuidance(payload map[string]any) map[string]FieldGuidance {
	raw, ok := payload["proposed_specific_guidance"].(map[string]any)
	if !ok {
		return nil
	}
	proposed := make(map[string]FieldGuidance, len(raw))
	for fieldName, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		proposed[fieldName] = FieldGuidance{
			Description:  stringField(m, "description"),
			Patterns:     stringField(m, "patterns"),
			CommonErrors: stringField(m, "common_errors"),
			Examples:     stringField(m, "examples"),
		}
	}
	return proposed
}

// ValidatePatterns sends every labeled example to the model in one call
// and scores its integrate/ignore answers against the ground truth.
// Predictions pair with examples by position; when the model returns a
// different count, only the paired prefix is scored and the mismatch is
// logged.
func (s *Service) ValidatePatterns(ctx context.Context, examples []ValidationExample) (ValidationSummary, error) {
	log.Printf("pattern validation examples=%d", len(examples))
	prompt := BuildValidationPrompt(examples)

	responseText, err := s.gateway.Invoke(ctx, prompt)
	if err != nil {
		return ValidationSummary{}, err
	}
	payload, err := parseModelJSON(responseText)
	if err != nil {
		return ValidationSummary{}, err
	}

	predictions := parsePredictions(payload)
	if len(predictions) != len(examples) {
		log.Printf("pattern validation count mismatch examples=%d predictions=%d", len(examples), len(predictions))
	}
	if len(predictions) > len(examples) {
		predictions = predictions[:len(examples)]
	}

	correct := 0
	for i, p := range predictions {
		if p.ShouldIntegrate == examples[i].ShouldIntegrate {
			correct++
		}
	}
	total := len(predictions)
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}

	return ValidationSummary{
		Accuracy:           accuracy,
		CorrectPredictions: correct,
		TotalPredictions:   total,
		Predictions:        predictions,
		Summary:            fmt.Sprintf("Accuracy: %.1f%% (%d/%d correct)", accuracy*100, correct, total),
	}, nil
}

func parsePredictions(payload map[string]any) []ValidationVerdict {
	raw, ok := payload["predictions"].([]any)
	if !ok {
		return nil
	}
	predictions := make([]ValidationVerdict, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		predictions = append(predictions, ValidationVerdict{
			FieldName:       stringField(m, "field_name"),
			ShouldIntegrate: boolField(m, "should_integrate"),
			Confidence:      floatField(m, "confidence"),
			Reasoning:       stringField(m, "reasoning"),
		})
	}
	return predictions
}

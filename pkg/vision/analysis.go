package vision

import (
	"Leaf-Love-Backend/domain"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DecodeAnalysis cleans a model reply and decodes it into a care sheet.
// Enum values are lower-cased before they are checked.
func DecodeAnalysis(validate *validator.Validate, text string) (domain.PlantAnalysis, error) {
	cleaned := CleanResponse(text)
	if cleaned == "" {
		return domain.PlantAnalysis{}, ErrEmptyResponse
	}

	var analysis domain.PlantAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return domain.PlantAnalysis{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	analysis.Name = strings.TrimSpace(analysis.Name)
	analysis.Difficulty = strings.ToLower(strings.TrimSpace(analysis.Difficulty))
	analysis.Light = strings.ToLower(strings.TrimSpace(analysis.Light))
	if analysis.WateringDays == nil {
		analysis.WateringDays = []string{}
	}

	if err := validate.Struct(analysis); err != nil {
		return domain.PlantAnalysis{}, fmt.Errorf("%w: %v", ErrInvalidAnalysis, err)
	}
	return analysis, nil
}

package domain

import (
	"encoding/json"
	"errors"
)

var (
	MessageSuccessDeletePlant = "Plant deleted successfully"

	MessageImageRequired     = "Image is required"
	MessageIDRequired        = "ID is required"
	MessagePlantNotFound     = "Plant not found"
	MessageFailedFetchPlants = "Error fetching plants"
	MessageFailedDeletePlant = "Error deleting plant"
	MessageFailedSavePlant   = "Error saving plant to database"
	MessageFailedContactAI   = "Error contacting AI service"
	MessageEmptyAIResponse   = "No response from AI service"
	MessageFailedParseAI     = "Error parsing AI response"
	MessageInvalidAIAnalysis = "Invalid plant data from AI service"
	MessageUnsupportedImage  = "Image must be an http(s) URL or an image data URI"

	ErrImageRequired      = errors.New("image is required")
	ErrPlantNotFound      = errors.New("plant not found")
	ErrInvalidPlantID     = errors.New("invalid plant id")
	ErrAIServiceFailed    = errors.New("AI service call failed")
	ErrInvalidImageFormat = errors.New("invalid image format")
)

type (
	CreatePlantRequest struct {
		Image string `json:"image" validate:"required"`
	}

	// PlantAnalysis is the care sheet returned by the AI service. The prompt
	// asks for "difficult" and "water"; "difficulty" and "wateringDays" are
	// accepted too.
	PlantAnalysis struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Difficulty   string   `json:"difficulty" validate:"oneof=easy medium hard"`
		WateringDays []string `json:"wateringDays"`
		Temperature  float64  `json:"temperature"`
		Humidity     float64  `json:"humidity"`
		Light        string   `json:"light" validate:"oneof=low medium high"`
	}
)

func (a *PlantAnalysis) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name         string   `json:"name"`
		Description  string   `json:"description"`
		Difficult    string   `json:"difficult"`
		Difficulty   string   `json:"difficulty"`
		Water        []string `json:"water"`
		WateringDays []string `json:"wateringDays"`
		Temperature  float64  `json:"temperature"`
		Humidity     float64  `json:"humidity"`
		Light        string   `json:"light"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = PlantAnalysis{
		Name:         raw.Name,
		Description:  raw.Description,
		Difficulty:   raw.Difficulty,
		WateringDays: raw.WateringDays,
		Temperature:  raw.Temperature,
		Humidity:     raw.Humidity,
		Light:        raw.Light,
	}
	if a.Difficulty == "" {
		a.Difficulty = raw.Difficult
	}
	if a.WateringDays == nil {
		a.WateringDays = raw.Water
	}
	return nil
}

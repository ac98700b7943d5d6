package entities

import (
	"time"
)

type Plant struct {
	ID           string    `gorm:"type:varchar(36);primary_key" bson:"-" json:"_id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `gorm:"type:text" bson:"description" json:"description"`
	Difficulty   string    `bson:"difficulty" json:"difficulty"` // easy | medium | hard
	WateringDays []string  `gorm:"serializer:json" bson:"wateringDays" json:"wateringDays"`
	Temperature  float64   `bson:"temperature" json:"temperature"`
	Humidity     float64   `bson:"humidity" json:"humidity"`
	Light        string    `bson:"light" json:"light"` // low | medium | high
	Image        string    `gorm:"type:text" bson:"image" json:"image"`
	ImageURL     string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt    time.Time `gorm:"type:timestamp;autoCreateTime:false" bson:"createdAt" json:"createdAt"`
}

func (Plant) TableName() string {
	return "plants"
}

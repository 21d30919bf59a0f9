package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plot is a cultivated parcel inside a farm. PlantingDate and HarvestDate
// are optional; when both are set, harvest must not precede planting.
type Plot struct {
	ID               string     `gorm:"type:char(36);primaryKey" json:"id"`
	FarmID           string     `gorm:"type:char(36);index" json:"farm_id"`
	Name             string     `json:"name"`
	AreaM2           float64    `json:"area_m2"`
	SoilType         *string    `json:"soil_type"` // alluvial|acid_sulfate|saline|sandy
	Variety          *string    `json:"variety"`
	PlantingDate     *time.Time `json:"planting_date"`
	HarvestDate      *time.Time `json:"harvest_date"`
	IrrigationMethod *string    `json:"irrigation_method"` // flooded|awd|rainfed
	Notes            *string    `json:"notes"`
	Photos           []string   `gorm:"serializer:json" json:"photos"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Plot) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// AfterFind keeps repeated fields as empty slices, never null, so readers
// stay null-check-free.
func (p *Plot) AfterFind(*gorm.DB) error {
	if p.Photos == nil {
		p.Photos = []string{}
	}
	return nil
}

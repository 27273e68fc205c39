package entities

import "time"

type InventoryItem struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	HomeID         uint       `gorm:"not null;index" json:"home_id"`
	Name           string     `gorm:"not null" json:"name"`
	Quantity       int        `gorm:"not null;default:0" json:"quantity"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	ImageURL       string     `json:"image_url,omitempty"`

	Home *Home `gorm:"foreignKey:HomeID" json:"home,omitempty"`
	Timestamp
}

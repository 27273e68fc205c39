package entities

type RecommendedInventoryItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"size:1000;not null" json:"description"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	ExpiresIn   int    `gorm:"not null" json:"expires_in"` // days
	IsOptional  bool   `gorm:"not null;default:false" json:"is_optional"`

	Timestamp
}

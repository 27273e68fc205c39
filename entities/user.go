package entities

type User struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"not null" json:"name"`
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	Password      string `gorm:"not null" json:"-"`
	Role          string `gorm:"size:16;not null;default:user" json:"role"` // user, admin
	DefaultHomeID *uint  `gorm:"index" json:"default_home_id,omitempty"`

	Timestamp
}

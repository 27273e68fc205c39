package entities

type HomeRole string

const (
	HomeRoleAdmin  HomeRole = "ADMIN"
	HomeRoleMember HomeRole = "MEMBER"
)

func (r HomeRole) Valid() bool {
	return r == HomeRoleAdmin || r == HomeRoleMember
}

type Home struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	Name             string `gorm:"not null" json:"name"`
	NumberOfAdults   int    `gorm:"not null;default:2" json:"number_of_adults"`
	NumberOfChildren int    `gorm:"not null;default:0" json:"number_of_children"`
	NumberOfPets     int    `gorm:"not null;default:0" json:"number_of_pets"`
	OwnerID          uint   `gorm:"not null;index" json:"owner_id"`

	Owner          *User            `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	HomeAccesses   []*HomeAccess    `gorm:"foreignKey:HomeID" json:"home_accesses,omitempty"`
	InventoryItems []*InventoryItem `gorm:"foreignKey:HomeID" json:"-"`
	Timestamp
}

// HomeAccess grants a non-owner user a role on a home. At most one row exists
// per (user, home) pair and the home's owner never has one.
type HomeAccess struct {
	ID     uint     `gorm:"primaryKey" json:"id"`
	UserID uint     `gorm:"not null;uniqueIndex:idx_home_access_user_home" json:"user_id"`
	HomeID uint     `gorm:"not null;uniqueIndex:idx_home_access_user_home" json:"home_id"`
	Role   HomeRole `gorm:"size:16;not null;default:MEMBER" json:"role"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Home *Home `gorm:"foreignKey:HomeID" json:"home,omitempty"`
	Timestamp
}

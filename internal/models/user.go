package models

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"default:member" json:"role"`
	Status       UserStatus `gorm:"default:active" json:"status"`

	// nil means the user never touched the preference; email stays on.
	EmailNotificationsEnabled *bool `json:"email_notifications_enabled"`
}

// WantsEmail reports whether notification emails may be sent to the user.
// Only an explicit opt-out disables them.
func (u *User) WantsEmail() bool {
	return u.EmailNotificationsEnabled == nil || *u.EmailNotificationsEnabled
}

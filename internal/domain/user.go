package domain

import "time"

// AppUser is a person known to the workflow (app_users table).
// Rows are keyed by the identity provider's email address.
type AppUser struct {
	ID        string    `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Image     string    `gorm:"column:image;type:varchar(500)" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for AppUser
func (AppUser) TableName() string {
	return "app_users"
}

// UserRole assigns one role to one user (user_roles table)
type UserRole struct {
	UserID    string    `gorm:"column:user_id;type:varchar(36);primaryKey" json:"user_id"`
	Role      Role      `gorm:"column:role;type:varchar(16);primaryKey" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name for UserRole
func (UserRole) TableName() string {
	return "user_roles"
}

// UserWithRoles is the admin user-list view
type UserWithRoles struct {
	AppUser
	Roles []Role `json:"roles"`
}

// SetRolesRequest replaces a user's role assignments
type SetRolesRequest struct {
	Roles []string `json:"roles" binding:"required" validate:"dive,required,max=16"`
}

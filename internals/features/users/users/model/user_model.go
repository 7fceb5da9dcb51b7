package model

import (
	"time"
)

// UserModel represents the `users` table. Kept minimal: the platform only needs
// enough of a user record for auth and for roster/attendance foreign keys.
type UserModel struct {
	UserID uint `json:"user_id" gorm:"column:user_id;primaryKey;autoIncrement"`

	UserFirstName string `json:"user_first_name" gorm:"column:user_first_name;type:varchar(80);not null"`
	UserLastName  string `json:"user_last_name"  gorm:"column:user_last_name;type:varchar(80);not null"`
	UserEmail     string `json:"user_email"      gorm:"column:user_email;type:varchar(160);not null;uniqueIndex:uq_users_email"`
	UserPassword  string `json:"-"               gorm:"column:user_password;type:varchar(200);not null"`

	// Coarse platform role (principal | teacher | student | staff)
	UserRole string `json:"user_role" gorm:"column:user_role;type:varchar(40);not null;default:student"`

	UserProfileImage *string `json:"user_profile_image,omitempty" gorm:"column:user_profile_image;type:text"`
	UserAbout        *string `json:"user_about,omitempty"         gorm:"column:user_about;type:text"`

	UserCreatedAt time.Time `json:"user_created_at" gorm:"column:user_created_at;autoCreateTime"`
	UserUpdatedAt time.Time `json:"user_updated_at" gorm:"column:user_updated_at;autoUpdateTime"`
}

func (UserModel) TableName() string {
	return "users"
}

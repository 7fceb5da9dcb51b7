package model

import "time"

// Membership roles. A row is exactly one of these; the role column is the tag
// that keeps student, teacher and captain rows from blurring into each other.
const (
	MemberRoleStudent = "student"
	MemberRoleTeacher = "teacher"
	MemberRoleCaptain = "captain"
)

// ClassMemberModel represents the `class_members` table: one person linked to
// one class in one role.
//
// Storage-level invariants (partial unique indexes, see databases.Migrate):
//   - (class_id, user_id, role) unique — no duplicate assignment
//   - user_id unique where role='student' — a student sits in one class only
//   - class_id unique where role='captain' — at most one captain per class
type ClassMemberModel struct {
	ClassMemberID uint `json:"class_member_id" gorm:"column:class_member_id;primaryKey;autoIncrement"`

	ClassMemberClassID uint   `json:"class_member_class_id" gorm:"column:class_member_class_id;not null;index;uniqueIndex:uq_class_members_class_user_role"`
	ClassMemberUserID  uint   `json:"class_member_user_id"  gorm:"column:class_member_user_id;not null;uniqueIndex:uq_class_members_class_user_role"`
	ClassMemberRole    string `json:"class_member_role"     gorm:"column:class_member_role;type:varchar(20);not null;uniqueIndex:uq_class_members_class_user_role"`

	ClassMemberCreatedAt time.Time `json:"class_member_created_at" gorm:"column:class_member_created_at;autoCreateTime"`
	ClassMemberUpdatedAt time.Time `json:"class_member_updated_at" gorm:"column:class_member_updated_at;autoUpdateTime"`
}

func (ClassMemberModel) TableName() string {
	return "class_members"
}

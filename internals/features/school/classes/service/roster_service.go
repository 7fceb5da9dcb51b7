package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	classModel "schoolhub_backend/internals/features/school/classes/model"
	schoolModel "schoolhub_backend/internals/features/school/schools/model"
	"schoolhub_backend/internals/helpers/errs"
)

// RosterService owns class records and class membership: who teaches a class,
// who sits in it, and who its captain is.
type RosterService struct {
	DB *gorm.DB
}

func NewRosterService(db *gorm.DB) *RosterService {
	return &RosterService{DB: db}
}

// ===============================
// Inputs / outputs
// ===============================

type ClassFilter struct {
	SchoolID *uint
	Name     *string // substring match
	IsActive *bool   // nil = active only
}

type ClassPatch struct {
	Name        *string
	Description *string
}

// ClassRoster is the grouped view of a class and its membership.
type ClassRoster struct {
	Class    classModel.SchoolClassModel   `json:"class"`
	Students []classModel.ClassMemberModel `json:"students"`
	Teachers []classModel.ClassMemberModel `json:"teachers"`
	Captain  *classModel.ClassMemberModel  `json:"captain,omitempty"`
}

// ===============================
// Class CRUD
// ===============================

func (s *RosterService) CreateClass(ctx context.Context, schoolID uint, name string, description *string) (*classModel.SchoolClassModel, error) {
	var school schoolModel.SchoolModel
	err := s.DB.WithContext(ctx).
		Where("school_id = ? AND school_is_active = ?", schoolID, true).
		First(&school).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("School not found")
	}
	if err != nil {
		return nil, err
	}

	cls := classModel.SchoolClassModel{
		ClassSchoolID:    schoolID,
		ClassName:        strings.TrimSpace(name),
		ClassDescription: description,
		ClassIsActive:    true,
	}
	if err := s.DB.WithContext(ctx).Create(&cls).Error; err != nil {
		return nil, err
	}
	return &cls, nil
}

func (s *RosterService) getActiveClass(ctx context.Context, id uint) (*classModel.SchoolClassModel, error) {
	var cls classModel.SchoolClassModel
	err := s.DB.WithContext(ctx).
		Where("class_id = ? AND class_is_active = ?", id, true).
		First(&cls).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("Class not found")
	}
	if err != nil {
		return nil, err
	}
	return &cls, nil
}

// GetClass returns the class with its membership grouped by role.
func (s *RosterService) GetClass(ctx context.Context, id uint) (*ClassRoster, error) {
	cls, err := s.getActiveClass(ctx, id)
	if err != nil {
		return nil, err
	}

	var members []classModel.ClassMemberModel
	if err := s.DB.WithContext(ctx).
		Where("class_member_class_id = ?", id).
		Order("class_member_id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	roster := ClassRoster{
		Class:    *cls,
		Students: []classModel.ClassMemberModel{},
		Teachers: []classModel.ClassMemberModel{},
	}
	for i := range members {
		m := members[i]
		switch m.ClassMemberRole {
		case classModel.MemberRoleStudent:
			roster.Students = append(roster.Students, m)
		case classModel.MemberRoleTeacher:
			roster.Teachers = append(roster.Teachers, m)
		case classModel.MemberRoleCaptain:
			roster.Captain = &members[i]
		}
	}
	return &roster, nil
}

func (s *RosterService) ListClasses(ctx context.Context, f ClassFilter, limit, offset int) ([]classModel.SchoolClassModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&classModel.SchoolClassModel{})

	if f.SchoolID != nil {
		tx = tx.Where("class_school_id = ?", *f.SchoolID)
	}
	if f.Name != nil && strings.TrimSpace(*f.Name) != "" {
		tx = tx.Where("LOWER(class_name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(*f.Name))+"%")
	}
	if f.IsActive != nil {
		tx = tx.Where("class_is_active = ?", *f.IsActive)
	} else {
		tx = tx.Where("class_is_active = ?", true)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []classModel.SchoolClassModel
	if err := tx.Order("class_id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *RosterService) UpdateClass(ctx context.Context, id uint, patch ClassPatch) (*classModel.SchoolClassModel, error) {
	cls, err := s.getActiveClass(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["class_name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		updates["class_description"] = *patch.Description
	}
	if len(updates) == 0 {
		return cls, nil
	}
	if err := s.DB.WithContext(ctx).Model(cls).Updates(updates).Error; err != nil {
		return nil, err
	}
	return cls, nil
}

// DeleteClass soft-deletes: the row stays, class_is_active flips to false.
func (s *RosterService) DeleteClass(ctx context.Context, id uint) error {
	cls, err := s.getActiveClass(ctx, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Model(cls).Update("class_is_active", false).Error
}

// ===============================
// Membership
// ===============================

func (s *RosterService) teacherEmployedAt(tx *gorm.DB, schoolID, teacherID uint) (bool, error) {
	var n int64
	err := tx.Model(&schoolModel.SchoolEmployeeModel{}).
		Where("school_employee_school_id = ? AND school_employee_user_id = ? AND school_employee_is_active = ?",
			schoolID, teacherID, true).
		Count(&n).Error
	return n > 0, err
}

func (s *RosterService) studentEnrolledAt(tx *gorm.DB, schoolID, studentID uint) (bool, error) {
	var n int64
	err := tx.Model(&schoolModel.SchoolStudentModel{}).
		Where("school_student_school_id = ? AND school_student_user_id = ? AND school_student_is_active = ?",
			schoolID, studentID, true).
		Count(&n).Error
	return n > 0, err
}

func (s *RosterService) memberExists(tx *gorm.DB, classID, userID uint, role string) (bool, error) {
	var n int64
	err := tx.Model(&classModel.ClassMemberModel{}).
		Where("class_member_class_id = ? AND class_member_user_id = ? AND class_member_role = ?", classID, userID, role).
		Count(&n).Error
	return n > 0, err
}

// AssignTeacher links an employed teacher to a class.
func (s *RosterService) AssignTeacher(ctx context.Context, schoolID, teacherID, classID uint) (*classModel.ClassMemberModel, error) {
	if _, err := s.getActiveClass(ctx, classID); err != nil {
		return nil, err
	}

	var member classModel.ClassMemberModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employed, err := s.teacherEmployedAt(tx, schoolID, teacherID)
		if err != nil {
			return err
		}
		if !employed {
			return errs.Forbidden("Teacher is not a member of this school")
		}

		exists, err := s.memberExists(tx, classID, teacherID, classModel.MemberRoleTeacher)
		if err != nil {
			return err
		}
		if exists {
			return errs.Conflict("This user is already assigned to this class as a teacher")
		}

		member = classModel.ClassMemberModel{
			ClassMemberClassID: classID,
			ClassMemberUserID:  teacherID,
			ClassMemberRole:    classModel.MemberRoleTeacher,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.Conflict("This user is already assigned to this class as a teacher")
		}
		return nil, err
	}
	return &member, nil
}

// AssignStudent links an enrolled student to a class. A student sits in at
// most one class at a time; moving them goes through ReassignStudent.
func (s *RosterService) AssignStudent(ctx context.Context, schoolID, studentID, classID uint) (*classModel.ClassMemberModel, error) {
	if _, err := s.getActiveClass(ctx, classID); err != nil {
		return nil, err
	}

	var member classModel.ClassMemberModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		enrolled, err := s.studentEnrolledAt(tx, schoolID, studentID)
		if err != nil {
			return err
		}
		if !enrolled {
			return errs.Forbidden("Student is not a member of this school")
		}

		var existing classModel.ClassMemberModel
		err = tx.Where("class_member_user_id = ? AND class_member_role = ?", studentID, classModel.MemberRoleStudent).
			First(&existing).Error
		switch {
		case err == nil && existing.ClassMemberClassID == classID:
			return errs.Conflict("This user is already assigned to this class")
		case err == nil:
			return errs.Conflict("A student cannot be assigned to multiple classes at the same time, kindly reassign the student instead")
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		member = classModel.ClassMemberModel{
			ClassMemberClassID: classID,
			ClassMemberUserID:  studentID,
			ClassMemberRole:    classModel.MemberRoleStudent,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.Conflict("This user is already assigned to this class")
		}
		return nil, err
	}
	return &member, nil
}

// reassignMember repoints an existing membership row to a new class. Update,
// not create: uniqueness survives by construction.
func (s *RosterService) reassignMember(ctx context.Context, userID, oldClassID, newClassID uint, role string) error {
	if _, err := s.getActiveClass(ctx, newClassID); err != nil {
		return err
	}

	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member classModel.ClassMemberModel
		err := tx.Where("class_member_class_id = ? AND class_member_user_id = ? AND class_member_role = ?",
			oldClassID, userID, role).
			First(&member).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.Forbidden("This user is not a member of this class")
		}
		if err != nil {
			return err
		}
		return tx.Model(&member).Update("class_member_class_id", newClassID).Error
	})
}

func (s *RosterService) ReassignTeacher(ctx context.Context, teacherID, oldClassID, newClassID uint) error {
	return s.reassignMember(ctx, teacherID, oldClassID, newClassID, classModel.MemberRoleTeacher)
}

func (s *RosterService) ReassignStudent(ctx context.Context, studentID, oldClassID, newClassID uint) error {
	return s.reassignMember(ctx, studentID, oldClassID, newClassID, classModel.MemberRoleStudent)
}

// MakeCaptain designates one of the class's students as captain. Captaincy is
// an additional membership row, never a flag on the student row.
func (s *RosterService) MakeCaptain(ctx context.Context, classID, captainID uint) (*classModel.ClassMemberModel, error) {
	if _, err := s.getActiveClass(ctx, classID); err != nil {
		return nil, err
	}

	var member classModel.ClassMemberModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		isStudent, err := s.memberExists(tx, classID, captainID, classModel.MemberRoleStudent)
		if err != nil {
			return err
		}
		if !isStudent {
			return errs.Forbidden("This user is not a member of this class")
		}

		already, err := s.memberExists(tx, classID, captainID, classModel.MemberRoleCaptain)
		if err != nil {
			return err
		}
		if already {
			return errs.Conflict("You can't be the class captain more than once")
		}

		var captains int64
		if err := tx.Model(&classModel.ClassMemberModel{}).
			Where("class_member_class_id = ? AND class_member_role = ?", classID, classModel.MemberRoleCaptain).
			Count(&captains).Error; err != nil {
			return err
		}
		if captains > 0 {
			return errs.Conflict("Two users cannot be captain at the same time")
		}

		member = classModel.ClassMemberModel{
			ClassMemberClassID: classID,
			ClassMemberUserID:  captainID,
			ClassMemberRole:    classModel.MemberRoleCaptain,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.Conflict("Two users cannot be captain at the same time")
		}
		return nil, err
	}
	return &member, nil
}

// DeleteCaptain removes the captaincy row. Membership rows are the one thing
// this service hard-deletes.
func (s *RosterService) DeleteCaptain(ctx context.Context, classID, captainID uint) error {
	res := s.DB.WithContext(ctx).
		Where("class_member_class_id = ? AND class_member_user_id = ? AND class_member_role = ?",
			classID, captainID, classModel.MemberRoleCaptain).
		Delete(&classModel.ClassMemberModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.Forbidden("This user is not a member of this class")
	}
	return nil
}

// ClassStudentIDs returns the ids of the class's current students.
func (s *RosterService) ClassStudentIDs(ctx context.Context, classID uint) ([]uint, error) {
	var ids []uint
	err := s.DB.WithContext(ctx).Model(&classModel.ClassMemberModel{}).
		Where("class_member_class_id = ? AND class_member_role = ?", classID, classModel.MemberRoleStudent).
		Pluck("class_member_user_id", &ids).Error
	return ids, err
}

// TeacherAssignedTo reports whether the teacher has a membership row in the class.
func (s *RosterService) TeacherAssignedTo(ctx context.Context, classID, teacherID uint) (bool, error) {
	return s.memberExists(s.DB.WithContext(ctx), classID, teacherID, classModel.MemberRoleTeacher)
}

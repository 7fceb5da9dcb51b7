package service

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	schoolModel "schoolhub_backend/internals/features/school/schools/model"
	userModel "schoolhub_backend/internals/features/users/users/model"
	"schoolhub_backend/internals/helpers/errs"
)

// SchoolService owns school records and school-level membership (enrolled
// students, employed staff). Those membership rows are what the roster's
// "is this person a member of the school" checks read.
type SchoolService struct {
	DB *gorm.DB
}

func NewSchoolService(db *gorm.DB) *SchoolService {
	return &SchoolService{DB: db}
}

type SchoolFilter struct {
	Name     *string // substring match
	IsActive *bool   // nil = active only
}

type SchoolPatch struct {
	Name    *string
	Address *string
	Contact datatypes.JSON
}

// SchoolDetail is a school with its current members.
type SchoolDetail struct {
	School    schoolModel.SchoolModel           `json:"school"`
	Students  []schoolModel.SchoolStudentModel  `json:"students"`
	Employees []schoolModel.SchoolEmployeeModel `json:"employees"`
}

func (s *SchoolService) CreateSchool(ctx context.Context, createdBy uint, name string, address *string, contact datatypes.JSON) (*schoolModel.SchoolModel, error) {
	school := schoolModel.SchoolModel{
		SchoolName:      strings.TrimSpace(name),
		SchoolAddress:   address,
		SchoolContact:   contact,
		SchoolIsActive:  true,
		SchoolCreatedBy: createdBy,
	}
	if err := s.DB.WithContext(ctx).Create(&school).Error; err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *SchoolService) getActiveSchool(ctx context.Context, id uint) (*schoolModel.SchoolModel, error) {
	var school schoolModel.SchoolModel
	err := s.DB.WithContext(ctx).
		Where("school_id = ? AND school_is_active = ?", id, true).
		First(&school).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NotFound("School not found")
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (s *SchoolService) GetSchool(ctx context.Context, id uint) (*SchoolDetail, error) {
	school, err := s.getActiveSchool(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := SchoolDetail{
		School:    *school,
		Students:  []schoolModel.SchoolStudentModel{},
		Employees: []schoolModel.SchoolEmployeeModel{},
	}
	if err := s.DB.WithContext(ctx).
		Where("school_student_school_id = ? AND school_student_is_active = ?", id, true).
		Find(&detail.Students).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).
		Where("school_employee_school_id = ? AND school_employee_is_active = ?", id, true).
		Find(&detail.Employees).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (s *SchoolService) ListSchools(ctx context.Context, f SchoolFilter, limit, offset int) ([]schoolModel.SchoolModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&schoolModel.SchoolModel{})
	if f.Name != nil && strings.TrimSpace(*f.Name) != "" {
		tx = tx.Where("LOWER(school_name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(*f.Name))+"%")
	}
	if f.IsActive != nil {
		tx = tx.Where("school_is_active = ?", *f.IsActive)
	} else {
		tx = tx.Where("school_is_active = ?", true)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []schoolModel.SchoolModel
	if err := tx.Order("school_id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *SchoolService) UpdateSchool(ctx context.Context, id uint, patch SchoolPatch) (*schoolModel.SchoolModel, error) {
	school, err := s.getActiveSchool(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["school_name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Address != nil {
		updates["school_address"] = *patch.Address
	}
	if patch.Contact != nil {
		updates["school_contact"] = patch.Contact
	}
	if len(updates) == 0 {
		return school, nil
	}
	if err := s.DB.WithContext(ctx).Model(school).Updates(updates).Error; err != nil {
		return nil, err
	}
	return school, nil
}

func (s *SchoolService) DeleteSchool(ctx context.Context, id uint) error {
	school, err := s.getActiveSchool(ctx, id)
	if err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Model(school).Update("school_is_active", false).Error
}

func (s *SchoolService) MySchools(ctx context.Context, createdBy uint) ([]schoolModel.SchoolModel, error) {
	var rows []schoolModel.SchoolModel
	err := s.DB.WithContext(ctx).
		Where("school_created_by = ? AND school_is_active = ?", createdBy, true).
		Order("school_id DESC").
		Find(&rows).Error
	return rows, err
}

func (s *SchoolService) userExists(ctx context.Context, userID uint) error {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return errs.NotFound("User not found")
	}
	return nil
}

// EnrollStudent creates the school-level student record.
func (s *SchoolService) EnrollStudent(ctx context.Context, schoolID, userID uint) (*schoolModel.SchoolStudentModel, error) {
	if _, err := s.getActiveSchool(ctx, schoolID); err != nil {
		return nil, err
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	row := schoolModel.SchoolStudentModel{
		SchoolStudentSchoolID: schoolID,
		SchoolStudentUserID:   userID,
		SchoolStudentIsActive: true,
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.Conflict("This student is already enrolled at this school")
		}
		return nil, err
	}
	return &row, nil
}

// AddEmployee creates the school-level employment record.
func (s *SchoolService) AddEmployee(ctx context.Context, schoolID, userID uint, title *string) (*schoolModel.SchoolEmployeeModel, error) {
	if _, err := s.getActiveSchool(ctx, schoolID); err != nil {
		return nil, err
	}
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	row := schoolModel.SchoolEmployeeModel{
		SchoolEmployeeSchoolID: schoolID,
		SchoolEmployeeUserID:   userID,
		SchoolEmployeeTitle:    title,
		SchoolEmployeeIsActive: true,
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		if errs.IsDuplicateKey(err) {
			return nil, errs.Conflict("This user is already an employee of this school")
		}
		return nil, err
	}
	return &row, nil
}

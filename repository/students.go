package repository

import (
	"fmt"

	"deutschklasse_go/models"
	"deutschklasse_go/utils"

	"gorm.io/gorm"
)

// CreateStudentInput enumerates every field accepted when creating a student.
type CreateStudentInput struct {
	UID          string
	UserID       uint
	ClassID      uint
	Name         string
	ActiveScore  int
	OverallScore float64
	WeakPoint    string
}

// CreateStudent persists one new student profile and returns it fully populated.
func CreateStudent(db *gorm.DB, in CreateStudentInput) (*models.Student, error) {
	if in.UID == "" {
		return nil, fmt.Errorf("%w: uid is required", ErrValidation)
	}
	if in.UserID == 0 || in.ClassID == 0 {
		return nil, fmt.Errorf("%w: user_id and class_id are required", ErrValidation)
	}
	if !utils.IsValidScore(float64(in.ActiveScore)) {
		return nil, fmt.Errorf("%w: active_score %d out of range", ErrValidation, in.ActiveScore)
	}
	if !utils.IsValidScore(in.OverallScore) {
		return nil, fmt.Errorf("%w: overall_score %.2f out of range", ErrValidation, in.OverallScore)
	}

	student := models.Student{
		UID:          in.UID,
		UserID:       in.UserID,
		ClassID:      in.ClassID,
		Name:         in.Name,
		ActiveScore:  in.ActiveScore,
		OverallScore: in.OverallScore,
		WeakPoint:    in.WeakPoint,
	}
	if err := db.Create(&student).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, fmt.Errorf("%w: student uid %q or user %d", ErrDuplicate, in.UID, in.UserID)
		}
		return nil, err
	}
	return &student, nil
}

// GetStudentByUID returns the matching student or ErrNotFound.
func GetStudentByUID(db *gorm.DB, uid string) (*models.Student, error) {
	var student models.Student
	if err := db.Where("uid = ?", uid).First(&student).Error; err != nil {
		return nil, notFoundOrErr(err)
	}
	return &student, nil
}

// ListStudentsByClass returns the roster of a classroom ordered by uid. An
// empty classroom yields an empty slice, never an error.
func ListStudentsByClass(db *gorm.DB, classID uint) ([]models.Student, error) {
	var students []models.Student
	if err := db.Where("class_id = ?", classID).Order("uid ASC").Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

package repository

import (
	"fmt"

	"deutschklasse_go/models"

	"gorm.io/gorm"
)

// CreateClassroomInput enumerates every field accepted when creating a classroom.
type CreateClassroomInput struct {
	ClassCode     string
	ClassName     string
	Grade         string
	TeacherUserID uint
}

// CreateClassroom persists one new classroom and returns it fully populated.
func CreateClassroom(db *gorm.DB, in CreateClassroomInput) (*models.Classroom, error) {
	if in.ClassCode == "" {
		return nil, fmt.Errorf("%w: class_code is required", ErrValidation)
	}
	if in.TeacherUserID == 0 {
		return nil, fmt.Errorf("%w: teacher_user_id is required", ErrValidation)
	}

	classroom := models.Classroom{
		ClassCode:     in.ClassCode,
		ClassName:     in.ClassName,
		Grade:         in.Grade,
		TeacherUserID: in.TeacherUserID,
	}
	if err := db.Create(&classroom).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, fmt.Errorf("%w: class_code %q", ErrDuplicate, in.ClassCode)
		}
		return nil, err
	}
	return &classroom, nil
}

// GetClassroomByCode returns the matching classroom or ErrNotFound.
func GetClassroomByCode(db *gorm.DB, classCode string) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := db.Where("class_code = ?", classCode).First(&classroom).Error; err != nil {
		return nil, notFoundOrErr(err)
	}
	return &classroom, nil
}

// ListClassroomsByTeacher returns all classrooms owned by a teacher. An
// unknown teacher yields an empty slice, never an error.
func ListClassroomsByTeacher(db *gorm.DB, teacherUserID uint) ([]models.Classroom, error) {
	var classrooms []models.Classroom
	if err := db.Where("teacher_user_id = ?", teacherUserID).Find(&classrooms).Error; err != nil {
		return nil, err
	}
	return classrooms, nil
}

package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"deutschklasse_go/models"
	"deutschklasse_go/utils"

	"gorm.io/gorm"
)

// CreateExamInput enumerates every field accepted when creating an exam.
type CreateExamInput struct {
	ExamCode      string
	TeacherUserID uint
	GrammarItems  int
	WritingItems  int
	Strategy      string
	FocusAreas    []string
}

// CreateExam persists one new exam and returns it fully populated. FocusAreas
// keeps its order through the JSON column.
func CreateExam(db *gorm.DB, in CreateExamInput) (*models.Exam, error) {
	if in.ExamCode == "" {
		return nil, fmt.Errorf("%w: exam_code is required", ErrValidation)
	}
	if in.TeacherUserID == 0 {
		return nil, fmt.Errorf("%w: teacher_user_id is required", ErrValidation)
	}
	if in.GrammarItems < 0 || in.WritingItems < 0 {
		return nil, fmt.Errorf("%w: item counts must be >= 0", ErrValidation)
	}
	if !utils.IsValidStrategy(in.Strategy) {
		return nil, fmt.Errorf("%w: invalid strategy %q", ErrValidation, in.Strategy)
	}

	focusAreas := in.FocusAreas
	if focusAreas == nil {
		focusAreas = []string{}
	}
	focusJSON, err := json.Marshal(focusAreas)
	if err != nil {
		return nil, err
	}

	exam := models.Exam{
		ExamCode:      in.ExamCode,
		TeacherUserID: in.TeacherUserID,
		GrammarItems:  in.GrammarItems,
		WritingItems:  in.WritingItems,
		Strategy:      in.Strategy,
		FocusAreas:    focusJSON,
	}
	if err := db.Create(&exam).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, fmt.Errorf("%w: exam_code %q", ErrDuplicate, in.ExamCode)
		}
		return nil, err
	}
	return &exam, nil
}

// GetExamByCode returns the matching exam or ErrNotFound.
func GetExamByCode(db *gorm.DB, code string) (*models.Exam, error) {
	var exam models.Exam
	if err := db.Where("exam_code = ?", code).First(&exam).Error; err != nil {
		return nil, notFoundOrErr(err)
	}
	return &exam, nil
}

// CreateOrGetExamAssignment returns the existing assignment for
// (exam, student) unchanged, or creates it when absent. Same race handling as
// scenario pushes: the unique pair index decides, the loser re-reads.
func CreateOrGetExamAssignment(db *gorm.DB, examID, studentID uint) (*models.ExamAssignment, error) {
	if examID == 0 || studentID == 0 {
		return nil, fmt.Errorf("%w: exam_id and student_id are required", ErrValidation)
	}

	var assignment models.ExamAssignment
	err := db.Where("exam_id = ? AND student_id = ?", examID, studentID).First(&assignment).Error
	if err == nil {
		return &assignment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	assignment = models.ExamAssignment{
		ExamID:    examID,
		StudentID: studentID,
		Status:    "assigned",
	}
	if createErr := db.Create(&assignment).Error; createErr != nil {
		if isDuplicateErr(createErr) {
			var existing models.ExamAssignment
			if err := db.Where("exam_id = ? AND student_id = ?", examID, studentID).
				First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, createErr
	}
	return &assignment, nil
}

// ListAssignmentsByExam returns all assignments of an exam. None yields an
// empty slice, never an error.
func ListAssignmentsByExam(db *gorm.DB, examID uint) ([]models.ExamAssignment, error) {
	var assignments []models.ExamAssignment
	if err := db.Where("exam_id = ?", examID).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

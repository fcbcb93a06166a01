package repository

import (
	"fmt"
	"time"

	"deutschklasse_go/models"
	"deutschklasse_go/utils"

	"gorm.io/gorm"
)

// CreateHomeworkInput enumerates every field accepted when creating a homework.
type CreateHomeworkInput struct {
	StudentID   uint
	Title       string
	Status      string
	SubmittedAt *time.Time
	Score       *float64
	FileType    string
	FileURL     string
	FileName    string
	FileSize    string
	AIComment   string
}

// CreateHomework persists one new homework row and returns it fully populated.
func CreateHomework(db *gorm.DB, in CreateHomeworkInput) (*models.Homework, error) {
	if in.StudentID == 0 {
		return nil, fmt.Errorf("%w: student_id is required", ErrValidation)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Score != nil && !utils.IsValidScore(*in.Score) {
		return nil, fmt.Errorf("%w: score %.2f out of range", ErrValidation, *in.Score)
	}

	homework := models.Homework{
		StudentID:   in.StudentID,
		Title:       in.Title,
		Status:      in.Status,
		SubmittedAt: in.SubmittedAt,
		Score:       in.Score,
		FileType:    in.FileType,
		FileURL:     in.FileURL,
		FileName:    in.FileName,
		FileSize:    in.FileSize,
		AIComment:   in.AIComment,
	}
	if err := db.Create(&homework).Error; err != nil {
		return nil, err
	}
	return &homework, nil
}

// GetHomeworkByID returns the matching homework or ErrNotFound.
func GetHomeworkByID(db *gorm.DB, id uint) (*models.Homework, error) {
	var homework models.Homework
	if err := db.First(&homework, id).Error; err != nil {
		return nil, notFoundOrErr(err)
	}
	return &homework, nil
}

// ListHomeworksByStudent returns a student's homeworks newest first. A student
// with no homework yields an empty slice, never an error.
func ListHomeworksByStudent(db *gorm.DB, studentID uint) ([]models.Homework, error) {
	var homeworks []models.Homework
	if err := db.Where("student_id = ?", studentID).
		Order("created_at DESC").Find(&homeworks).Error; err != nil {
		return nil, err
	}
	return homeworks, nil
}

// UpdateHomeworkScoreFeedback overwrites score unconditionally and ai_comment
// only when feedback is non-empty; an empty feedback leaves the prior comment
// intact. Returns ErrNotFound when the homework does not exist.
func UpdateHomeworkScoreFeedback(db *gorm.DB, id uint, score float64, feedback string) (*models.Homework, error) {
	if !utils.IsValidScore(score) {
		return nil, fmt.Errorf("%w: score %.2f out of range", ErrValidation, score)
	}

	homework, err := GetHomeworkByID(db, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"score": score}
	if feedback != "" {
		updates["ai_comment"] = feedback
	}
	if err := db.Model(homework).Updates(updates).Error; err != nil {
		return nil, err
	}
	return homework, nil
}

package repository

import (
	"fmt"

	"deutschklasse_go/models"
	"deutschklasse_go/utils"

	"gorm.io/gorm"
)

// CreateHomeworkReviewInput enumerates every field of a review audit record.
type CreateHomeworkReviewInput struct {
	HomeworkID    uint
	TeacherUserID uint
	Score         float64
	Feedback      string
}

// CreateHomeworkReview appends one immutable scoring-event record.
func CreateHomeworkReview(db *gorm.DB, in CreateHomeworkReviewInput) (*models.HomeworkReview, error) {
	if in.HomeworkID == 0 || in.TeacherUserID == 0 {
		return nil, fmt.Errorf("%w: homework_id and teacher_user_id are required", ErrValidation)
	}
	if !utils.IsValidScore(in.Score) {
		return nil, fmt.Errorf("%w: score %.2f out of range", ErrValidation, in.Score)
	}

	review := models.HomeworkReview{
		HomeworkID:    in.HomeworkID,
		TeacherUserID: in.TeacherUserID,
		Score:         in.Score,
		Feedback:      in.Feedback,
	}
	if err := db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListReviewsByHomework returns the scoring history of a homework, oldest
// first. No reviews yields an empty slice, never an error.
func ListReviewsByHomework(db *gorm.DB, homeworkID uint) ([]models.HomeworkReview, error) {
	var reviews []models.HomeworkReview
	if err := db.Where("homework_id = ?", homeworkID).
		Order("reviewed_at ASC").Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

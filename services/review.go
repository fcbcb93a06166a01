package services

import (
	"deutschklasse_go/models"
	"deutschklasse_go/repository"

	"gorm.io/gorm"
)

// SaveHomeworkReview appends an immutable review record and applies the
// partial update to the homework row (score always, feedback only when
// non-empty), both in one transaction.
func SaveHomeworkReview(db *gorm.DB, teacherUserID, homeworkID uint, score float64, feedback string) (*models.Homework, error) {
	var homework *models.Homework

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := repository.GetHomeworkByID(tx, homeworkID); err != nil {
			return err
		}

		if _, err := repository.CreateHomeworkReview(tx, repository.CreateHomeworkReviewInput{
			HomeworkID:    homeworkID,
			TeacherUserID: teacherUserID,
			Score:         score,
			Feedback:      feedback,
		}); err != nil {
			return err
		}

		var err error
		homework, err = repository.UpdateHomeworkScoreFeedback(tx, homeworkID, score, feedback)
		return err
	})
	if err != nil {
		return nil, err
	}
	return homework, nil
}

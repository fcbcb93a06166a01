package repository

import (
	"errors"
	"fmt"

	"deutschklasse_go/models"
	"deutschklasse_go/utils"

	"gorm.io/gorm"
)

// UpsertStudentAbilityInput enumerates every upsertable ability field.
type UpsertStudentAbilityInput struct {
	StudentID   uint
	Listening   int
	Speaking    int
	Reading     int
	Writing     int
	AIDiagnosis string
}

func (in UpsertStudentAbilityInput) validate() error {
	if in.StudentID == 0 {
		return fmt.Errorf("%w: student_id is required", ErrValidation)
	}
	dims := map[string]int{
		"listening": in.Listening,
		"speaking":  in.Speaking,
		"reading":   in.Reading,
		"writing":   in.Writing,
	}
	for name, v := range dims {
		if !utils.IsValidScore(float64(v)) {
			return fmt.Errorf("%w: %s %d out of range", ErrValidation, name, v)
		}
	}
	return nil
}

// UpsertStudentAbility locates the ability row by student_id and overwrites
// every field, touching updated_at; if absent it creates the row. Exactly one
// row per student exists after the call.
func UpsertStudentAbility(db *gorm.DB, in UpsertStudentAbilityInput) (*models.StudentAbility, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var ability models.StudentAbility
	err := db.Where("student_id = ?", in.StudentID).First(&ability).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		ability = models.StudentAbility{
			StudentID:   in.StudentID,
			Listening:   in.Listening,
			Speaking:    in.Speaking,
			Reading:     in.Reading,
			Writing:     in.Writing,
			AIDiagnosis: in.AIDiagnosis,
		}
		if createErr := db.Create(&ability).Error; createErr != nil {
			// A concurrent upsert for the same student may win the insert
			// race; the unique index on student_id is the final arbiter, so
			// fall through to the update path.
			if !isDuplicateErr(createErr) {
				return nil, createErr
			}
			if err := db.Where("student_id = ?", in.StudentID).First(&ability).Error; err != nil {
				return nil, err
			}
		} else {
			return &ability, nil
		}
	}

	updates := map[string]interface{}{
		"listening":    in.Listening,
		"speaking":     in.Speaking,
		"reading":      in.Reading,
		"writing":      in.Writing,
		"ai_diagnosis": in.AIDiagnosis,
	}
	if err := db.Model(&ability).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &ability, nil
}

// GetAbilityByStudentID returns the ability row or ErrNotFound.
func GetAbilityByStudentID(db *gorm.DB, studentID uint) (*models.StudentAbility, error) {
	var ability models.StudentAbility
	if err := db.Where("student_id = ?", studentID).First(&ability).Error; err != nil {
		return nil, notFoundOrErr(err)
	}
	return &ability, nil
}

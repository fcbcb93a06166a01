package repository

import (
	"errors"
	"fmt"

	"deutschklasse_go/models"

	"gorm.io/gorm"
)

// CreateScenarioInput enumerates every field accepted when creating a scenario.
type CreateScenarioInput struct {
	ScenarioCode            string
	TeacherUserID           uint
	Theme                   string
	Difficulty              string
	Persona                 string
	GoalRequirePerfectTense bool
	GoalRequireB1Vocab      bool
}

// CreateScenario persists one new scenario and returns it fully populated.
func CreateScenario(db *gorm.DB, in CreateScenarioInput) (*models.Scenario, error) {
	if in.ScenarioCode == "" {
		return nil, fmt.Errorf("%w: scenario_code is required", ErrValidation)
	}
	if in.TeacherUserID == 0 {
		return nil, fmt.Errorf("%w: teacher_user_id is required", ErrValidation)
	}

	scenario := models.Scenario{
		ScenarioCode:            in.ScenarioCode,
		TeacherUserID:           in.TeacherUserID,
		Theme:                   in.Theme,
		Difficulty:              in.Difficulty,
		Persona:                 in.Persona,
		GoalRequirePerfectTense: in.GoalRequirePerfectTense,
		GoalRequireB1Vocab:      in.GoalRequireB1Vocab,
	}
	if err := db.Create(&scenario).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, fmt.Errorf("%w: scenario_code %q", ErrDuplicate, in.ScenarioCode)
		}
		return nil, err
	}
	return &scenario, nil
}

// GetScenarioByCode returns the matching scenario or ErrNotFound.
func GetScenarioByCode(db *gorm.DB, code string) (*models.Scenario, error) {
	var scenario models.Scenario
	if err := db.Where("scenario_code = ?", code).First(&scenario).Error; err != nil {
		return nil, notFoundOrErr(err)
	}
	return &scenario, nil
}

// CreateOrGetScenarioPush returns the existing push for (scenario, student)
// unchanged, or creates it when absent. Concurrent callers racing on the same
// pair both succeed: the loser of the insert race retries as a lookup, with
// the composite unique index as the final arbiter.
func CreateOrGetScenarioPush(db *gorm.DB, scenarioID, studentID uint) (*models.ScenarioPush, error) {
	if scenarioID == 0 || studentID == 0 {
		return nil, fmt.Errorf("%w: scenario_id and student_id are required", ErrValidation)
	}

	var push models.ScenarioPush
	err := db.Where("scenario_id = ? AND student_id = ?", scenarioID, studentID).First(&push).Error
	if err == nil {
		return &push, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	push = models.ScenarioPush{
		ScenarioID: scenarioID,
		StudentID:  studentID,
		PushStatus: "pushed",
	}
	if createErr := db.Create(&push).Error; createErr != nil {
		if isDuplicateErr(createErr) {
			var existing models.ScenarioPush
			if err := db.Where("scenario_id = ? AND student_id = ?", scenarioID, studentID).
				First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, createErr
	}
	return &push, nil
}

// ListPushesByScenario returns all pushes of a scenario. No pushes yields an
// empty slice, never an error.
func ListPushesByScenario(db *gorm.DB, scenarioID uint) ([]models.ScenarioPush, error) {
	var pushes []models.ScenarioPush
	if err := db.Where("scenario_id = ?", scenarioID).Find(&pushes).Error; err != nil {
		return nil, err
	}
	return pushes, nil
}

package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"deutschklasse_go/models"
	"deutschklasse_go/repository"
	"deutschklasse_go/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Baseline demo graph: one teacher, one classroom, a fixed roster. Every
// handler calls EnsureBaseline defensively before reads and writes, so the
// whole function must be safe to repeat with no side effects after the first
// call.
const (
	DemoTeacherUsername = "t_zhang"
	DemoTeacherName     = "张老师"
	DemoClassCode       = "SE-2026-4"
	DemoClassName       = "软件工程(四)班"
	DemoClassGrade      = "2026"
	demoPassword        = "password123"

	seedHomeworkTitle   = "德语写作作业-第3周"
	seedHomeworkStatus  = "已完成"
	seedHomeworkComment = "结构清晰，建议继续优化复杂句表达。"
)

type studentDescriptor struct {
	UID          string
	Username     string
	Name         string
	ActiveScore  int
	OverallScore float64
	WeakPoint    string
}

var demoStudents = []studentDescriptor{
	{UID: "2452001", Username: "s_li", Name: "李娜", ActiveScore: 88, OverallScore: 91.5, WeakPoint: "虚拟式"},
	{UID: "2452002", Username: "s_wang", Name: "王强", ActiveScore: 64, OverallScore: 78.0, WeakPoint: "被动语态"},
}

// ProvisioningService guarantees the baseline domain graph exists and fans
// out classroom-wide scenario/exam pushes.
type ProvisioningService struct{}

func NewProvisioningService() *ProvisioningService {
	return &ProvisioningService{}
}

// EnsureBaseline makes sure the demo teacher, classroom, students, ability
// rows and one seeded homework per student exist. Create-only-if-absent for
// users/classroom/students/homework; upsert for abilities.
func (ps *ProvisioningService) EnsureBaseline(db *gorm.DB) (*models.User, *models.Classroom, error) {
	var teacher *models.User
	var classroom *models.Classroom

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		teacher, err = ps.ensureUser(tx, DemoTeacherUsername, models.RoleTeacher, DemoTeacherName)
		if err != nil {
			return err
		}

		classroom, err = repository.GetClassroomByCode(tx, DemoClassCode)
		if errors.Is(err, repository.ErrNotFound) {
			classroom, err = repository.CreateClassroom(tx, repository.CreateClassroomInput{
				ClassCode:     DemoClassCode,
				ClassName:     DemoClassName,
				Grade:         DemoClassGrade,
				TeacherUserID: teacher.ID,
			})
		}
		if err != nil {
			return err
		}

		for _, desc := range demoStudents {
			if err := ps.ensureStudent(tx, classroom.ID, desc); err != nil {
				return fmt.Errorf("ensure student %s: %w", desc.UID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return teacher, classroom, nil
}

func (ps *ProvisioningService) ensureUser(db *gorm.DB, username, role, displayName string) (*models.User, error) {
	user, err := repository.GetUserByUsername(db, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(demoPassword)
	if err != nil {
		return nil, err
	}
	return repository.CreateUser(db, repository.CreateUserInput{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		DisplayName:  displayName,
	})
}

func (ps *ProvisioningService) ensureStudent(db *gorm.DB, classID uint, desc studentDescriptor) error {
	user, err := ps.ensureUser(db, desc.Username, models.RoleStudent, desc.Name)
	if err != nil {
		return err
	}

	student, err := repository.GetStudentByUID(db, desc.UID)
	if errors.Is(err, repository.ErrNotFound) {
		student, err = repository.CreateStudent(db, repository.CreateStudentInput{
			UID:          desc.UID,
			UserID:       user.ID,
			ClassID:      classID,
			Name:         desc.Name,
			ActiveScore:  desc.ActiveScore,
			OverallScore: desc.OverallScore,
			WeakPoint:    desc.WeakPoint,
		})
	}
	if err != nil {
		return err
	}

	if _, err := repository.UpsertStudentAbility(db, DeriveAbility(student.ID, desc)); err != nil {
		return err
	}

	homeworks, err := repository.ListHomeworksByStudent(db, student.ID)
	if err != nil {
		return err
	}
	if len(homeworks) == 0 {
		now := time.Now().UTC()
		score := desc.OverallScore
		_, err = repository.CreateHomework(db, repository.CreateHomeworkInput{
			StudentID:   student.ID,
			Title:       seedHomeworkTitle,
			Status:      seedHomeworkStatus,
			SubmittedAt: &now,
			Score:       &score,
			FileType:    "text",
			FileURL:     fmt.Sprintf("https://example.com/%s/week3.txt", desc.UID),
			FileName:    fmt.Sprintf("%s-week3.txt", desc.UID),
			FileSize:    "24 KB",
			AIComment:   seedHomeworkComment,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// DeriveAbility maps a student's active/overall scores onto the four ability
// dimensions deterministically.
func DeriveAbility(studentID uint, desc studentDescriptor) repository.UpsertStudentAbilityInput {
	overall := int(math.Round(desc.OverallScore))
	return repository.UpsertStudentAbilityInput{
		StudentID:   studentID,
		Listening:   clampScore(desc.ActiveScore + 1),
		Speaking:    clampScore(desc.ActiveScore - 2),
		Reading:     clampScore(overall),
		Writing:     clampScore(overall - 3),
		AIDiagnosis: fmt.Sprintf("%s在%s方面需要重点强化。", desc.Name, desc.WeakPoint),
	}
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ScenarioConfig carries the teacher-chosen scenario settings.
type ScenarioConfig struct {
	Theme               string
	Difficulty          string
	Persona             string
	RequirePerfectTense bool
	RequireB1Vocab      bool
}

func (cfg *ScenarioConfig) applyDefaults() {
	if cfg.Theme == "" {
		cfg.Theme = "默认主题"
	}
	if cfg.Difficulty == "" {
		cfg.Difficulty = "A1"
	}
	if cfg.Persona == "" {
		cfg.Persona = "友好耐心"
	}
}

// PublishScenario creates a new scenario (always a new row per call; only the
// pushes deduplicate) and pushes it to every student of the demo classroom.
// The scenario row and the full fan-out share one transaction, so a partial
// publish is never observable.
func (ps *ProvisioningService) PublishScenario(db *gorm.DB, cfg ScenarioConfig) (*models.Scenario, []models.ScenarioPush, error) {
	cfg.applyDefaults()

	var scenario *models.Scenario
	var pushes []models.ScenarioPush

	err := db.Transaction(func(tx *gorm.DB) error {
		teacher, classroom, err := ps.EnsureBaseline(tx)
		if err != nil {
			return err
		}

		scenario, err = repository.CreateScenario(tx, repository.CreateScenarioInput{
			ScenarioCode:            NewScenarioCode(),
			TeacherUserID:           teacher.ID,
			Theme:                   cfg.Theme,
			Difficulty:              cfg.Difficulty,
			Persona:                 cfg.Persona,
			GoalRequirePerfectTense: cfg.RequirePerfectTense,
			GoalRequireB1Vocab:      cfg.RequireB1Vocab,
		})
		if err != nil {
			return err
		}

		students, err := repository.ListStudentsByClass(tx, classroom.ID)
		if err != nil {
			return err
		}
		for _, s := range students {
			push, err := repository.CreateOrGetScenarioPush(tx, scenario.ID, s.ID)
			if err != nil {
				return err
			}
			pushes = append(pushes, *push)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"scenario_code": scenario.ScenarioCode,
		"pushes":        len(pushes),
	}).Info("Scenario published")
	return scenario, pushes, nil
}

// PushExistingScenario re-runs the fan-out of an already created scenario
// against the current roster: an unchanged roster gains no rows, a student
// added since the first publish gains exactly one.
func (ps *ProvisioningService) PushExistingScenario(db *gorm.DB, scenarioID, classID uint) ([]models.ScenarioPush, error) {
	var pushes []models.ScenarioPush
	err := db.Transaction(func(tx *gorm.DB) error {
		students, err := repository.ListStudentsByClass(tx, classID)
		if err != nil {
			return err
		}
		for _, s := range students {
			push, err := repository.CreateOrGetScenarioPush(tx, scenarioID, s.ID)
			if err != nil {
				return err
			}
			pushes = append(pushes, *push)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pushes, nil
}

// ExamConfig carries the teacher-chosen exam settings.
type ExamConfig struct {
	GrammarItems int
	WritingItems int
	Strategy     string
	FocusAreas   []string
}

// GenerateExam creates a new exam and assigns it to every student of the demo
// classroom inside one transaction.
func (ps *ProvisioningService) GenerateExam(db *gorm.DB, cfg ExamConfig) (*models.Exam, int, error) {
	if cfg.Strategy == "" {
		cfg.Strategy = models.StrategyPersonalized
	}

	var exam *models.Exam
	var assigned int

	err := db.Transaction(func(tx *gorm.DB) error {
		teacher, classroom, err := ps.EnsureBaseline(tx)
		if err != nil {
			return err
		}

		exam, err = repository.CreateExam(tx, repository.CreateExamInput{
			ExamCode:      NewExamCode(),
			TeacherUserID: teacher.ID,
			GrammarItems:  cfg.GrammarItems,
			WritingItems:  cfg.WritingItems,
			Strategy:      cfg.Strategy,
			FocusAreas:    cfg.FocusAreas,
		})
		if err != nil {
			return err
		}

		students, err := repository.ListStudentsByClass(tx, classroom.ID)
		if err != nil {
			return err
		}
		for _, s := range students {
			if _, err := repository.CreateOrGetExamAssignment(tx, exam.ID, s.ID); err != nil {
				return err
			}
			assigned++
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	logrus.WithFields(logrus.Fields{
		"exam_code": exam.ExamCode,
		"students":  assigned,
	}).Info("Exam generated")
	return exam, assigned, nil
}

// PushScheme creates a personalized reinforcement scenario for one student
// and pushes it to that student only.
func (ps *ProvisioningService) PushScheme(db *gorm.DB, studentUID string) (*models.Scenario, error) {
	var scenario *models.Scenario

	err := db.Transaction(func(tx *gorm.DB) error {
		teacher, _, err := ps.EnsureBaseline(tx)
		if err != nil {
			return err
		}

		student, err := repository.GetStudentByUID(tx, studentUID)
		if err != nil {
			return err
		}

		scenario, err = repository.CreateScenario(tx, repository.CreateScenarioInput{
			ScenarioCode:            NewSchemeCode(),
			TeacherUserID:           teacher.ID,
			Theme:                   "个性化强化方案",
			Difficulty:              "自适应",
			Persona:                 "严谨纠错",
			GoalRequirePerfectTense: true,
			GoalRequireB1Vocab:      false,
		})
		if err != nil {
			return err
		}

		_, err = repository.CreateOrGetScenarioPush(tx, scenario.ID, student.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return scenario, nil
}

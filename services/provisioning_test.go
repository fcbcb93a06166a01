package services

import (
	"errors"
	"testing"

	"deutschklasse_go/models"
	"deutschklasse_go/repository"
)

func TestEnsureBaselineIdempotent(t *testing.T) {
	db := newTestDB(t)
	ps := NewProvisioningService()

	for i := 0; i < 2; i++ {
		teacher, classroom, err := ps.EnsureBaseline(db)
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
		if teacher.Username != DemoTeacherUsername || teacher.Role != models.RoleTeacher {
			t.Fatalf("run %d: unexpected teacher %+v", i, teacher)
		}
		if classroom.ClassCode != DemoClassCode {
			t.Fatalf("run %d: unexpected classroom %+v", i, classroom)
		}
	}

	counts := []struct {
		name  string
		model interface{}
		want  int64
	}{
		{"users", &models.User{}, 3},
		{"classrooms", &models.Classroom{}, 1},
		{"students", &models.Student{}, 2},
		{"abilities", &models.StudentAbility{}, 2},
		{"homeworks", &models.Homework{}, 2},
	}
	for _, c := range counts {
		var got int64
		if err := db.Model(c.model).Count(&got).Error; err != nil {
			t.Fatalf("count %s: %v", c.name, err)
		}
		if got != c.want {
			t.Fatalf("expected %d %s after two runs, got %d", c.want, c.name, got)
		}
	}
}

func TestEnsureBaselineAbilityDerivation(t *testing.T) {
	db := newTestDB(t)
	ps := NewProvisioningService()

	if _, _, err := ps.EnsureBaseline(db); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 李娜: active 88, overall 91.5 rounds to 92.
	student, err := repository.GetStudentByUID(db, "2452001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ability, err := repository.GetAbilityByStudentID(db, student.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ability.Listening != 89 || ability.Speaking != 86 || ability.Reading != 92 || ability.Writing != 89 {
		t.Fatalf("unexpected derivation: %+v", ability)
	}
	if ability.AIDiagnosis == "" {
		t.Fatal("expected a non-empty diagnosis")
	}
}

func TestPublishScenarioFansOutToRoster(t *testing.T) {
	db := newTestDB(t)
	ps := NewProvisioningService()

	scenario, pushes, err := ps.PublishScenario(db, ScenarioConfig{Theme: "在咖啡馆点单", Difficulty: "B1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scenario.Theme != "在咖啡馆点单" || scenario.Difficulty != "B1" {
		t.Fatalf("unexpected scenario %+v", scenario)
	}
	if len(pushes) != len(demoStudents) {
		t.Fatalf("expected %d pushes, got %d", len(demoStudents), len(pushes))
	}

	// Publishing again builds a new scenario; pushes dedupe per scenario only.
	second, _, err := ps.PublishScenario(db, ScenarioConfig{Theme: "在咖啡馆点单", Difficulty: "B1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID == scenario.ID || second.ScenarioCode == scenario.ScenarioCode {
		t.Fatalf("each publish must create a fresh scenario, got %d and %d", scenario.ID, second.ID)
	}
}

func TestPushExistingScenarioPicksUpNewStudents(t *testing.T) {
	db := newTestDB(t)
	ps := NewProvisioningService()

	scenario, pushes, err := ps.PublishScenario(db, ScenarioConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pushes) != 2 {
		t.Fatalf("expected 2 initial pushes, got %d", len(pushes))
	}

	// Enroll a third student after the first publish.
	_, classroom, err := ps.EnsureBaseline(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	user, err := repository.CreateUser(db, repository.CreateUserInput{
		Username: "s_zhao", PasswordHash: "$2a$10$fixturehashfixturehashfixtureha", Role: models.RoleStudent, DisplayName: "赵敏",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repository.CreateStudent(db, repository.CreateStudentInput{
		UID: "2452003", UserID: user.ID, ClassID: classroom.ID, Name: "赵敏",
		ActiveScore: 70, OverallScore: 75,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	again, err := ps.PushExistingScenario(db, scenario.ID, classroom.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(again) != 3 {
		t.Fatalf("expected 3 pushes after re-push, got %d", len(again))
	}

	var count int64
	if err := db.Model(&models.ScenarioPush{}).Where("scenario_id = ?", scenario.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("re-push must not duplicate existing rows, got %d", count)
	}
}

func TestGenerateExamAssignsRoster(t *testing.T) {
	db := newTestDB(t)
	ps := NewProvisioningService()

	exam, assigned, err := ps.GenerateExam(db, ExamConfig{
		GrammarItems: 15, WritingItems: 2, FocusAreas: []string{"虚拟式", "被动语态"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exam.Strategy != models.StrategyPersonalized {
		t.Fatalf("expected default strategy, got %q", exam.Strategy)
	}
	if assigned != 2 {
		t.Fatalf("expected 2 assignments, got %d", assigned)
	}

	assignments, err := repository.ListAssignmentsByExam(db, exam.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(assignments) != 2 {
		t.Fatalf("expected 2 assignment rows, got %d", len(assignments))
	}
}

func TestPushSchemeUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	ps := NewProvisioningService()

	if _, err := ps.PushScheme(db, "nonexistent"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPushSchemeTargetsOneStudent(t *testing.T) {
	db := newTestDB(t)
	ps := NewProvisioningService()

	scenario, err := ps.PushScheme(db, "2452002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scenario.Theme != "个性化强化方案" || !scenario.GoalRequirePerfectTense {
		t.Fatalf("unexpected scheme scenario %+v", scenario)
	}

	pushes, err := repository.ListPushesByScenario(db, scenario.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pushes) != 1 {
		t.Fatalf("scheme push must target exactly one student, got %d", len(pushes))
	}
}

package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch s := value.(type) {
	case []byte:
		*j = append((*j)[0:0], s...)
	case string:
		*j = append((*j)[0:0], s...)
	}
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// Role values for User.Role
const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Strategy values for Exam.Strategy
const (
	StrategyPersonalized = "personalized"
	StrategyUnified      = "unified"
)

// User model
type User struct {
	BaseModel
	Username    string `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Password    string `json:"-" gorm:"size:255;not null;column:password_hash"`
	Role        string `json:"role" gorm:"size:16;not null;check:role IN ('teacher','student')"`
	DisplayName string `json:"display_name" gorm:"size:64;not null"`
	Active      bool   `json:"active" gorm:"default:true"`

	// Relationships
	Classrooms []Classroom `json:"classrooms,omitempty" gorm:"foreignKey:TeacherUserID"`
	Student    *Student    `json:"student,omitempty" gorm:"foreignKey:UserID"`
}

// Classroom model
type Classroom struct {
	BaseModel
	ClassCode     string `json:"class_code" gorm:"size:32;not null;uniqueIndex"`
	ClassName     string `json:"class_name" gorm:"size:128;not null"`
	Grade         string `json:"grade" gorm:"size:32"`
	TeacherUserID uint   `json:"teacher_user_id" gorm:"not null"`

	// Relationships
	Teacher  User      `json:"teacher,omitempty" gorm:"foreignKey:TeacherUserID;constraint:OnDelete:RESTRICT"`
	Students []Student `json:"students,omitempty" gorm:"foreignKey:ClassID"`
}

// Student model
type Student struct {
	BaseModel
	UID          string  `json:"uid" gorm:"size:32;not null;uniqueIndex;column:uid"`
	UserID       uint    `json:"user_id" gorm:"not null;uniqueIndex"`
	ClassID      uint    `json:"class_id" gorm:"not null"`
	Name         string  `json:"name" gorm:"size:64;not null"`
	ActiveScore  int     `json:"active_score" gorm:"not null;default:0;check:active_score BETWEEN 0 AND 100"`
	OverallScore float64 `json:"overall_score" gorm:"not null;default:0;check:overall_score BETWEEN 0 AND 100"`
	WeakPoint    string  `json:"weak_point" gorm:"size:128"`

	// Relationships
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Classroom Classroom `json:"classroom,omitempty" gorm:"foreignKey:ClassID;constraint:OnDelete:RESTRICT"`
}

// StudentAbility model - at most one row per student, maintained by upsert
type StudentAbility struct {
	BaseModel
	StudentID   uint   `json:"student_id" gorm:"not null;uniqueIndex"`
	Listening   int    `json:"listening" gorm:"not null;default:0;check:listening BETWEEN 0 AND 100"`
	Speaking    int    `json:"speaking" gorm:"not null;default:0;check:speaking BETWEEN 0 AND 100"`
	Reading     int    `json:"reading" gorm:"not null;default:0;check:reading BETWEEN 0 AND 100"`
	Writing     int    `json:"writing" gorm:"not null;default:0;check:writing BETWEEN 0 AND 100"`
	AIDiagnosis string `json:"ai_diagnosis" gorm:"column:ai_diagnosis;type:text"`

	// Relationships
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// Homework model
type Homework struct {
	BaseModel
	StudentID   uint       `json:"student_id" gorm:"not null"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Status      string     `json:"status" gorm:"size:32;not null;default:'未提交'"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Score       *float64   `json:"score" gorm:"check:score IS NULL OR score BETWEEN 0 AND 100"`
	FileType    string     `json:"file_type" gorm:"size:16"`
	FileURL     string     `json:"file_url" gorm:"type:text"`
	FileName    string     `json:"file_name" gorm:"size:255"`
	FileSize    string     `json:"file_size" gorm:"size:64"`
	AIComment   string     `json:"ai_comment" gorm:"type:text"`

	// Relationships
	Student Student          `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Reviews []HomeworkReview `json:"reviews,omitempty" gorm:"foreignKey:HomeworkID"`
}

// HomeworkReview model - append-only record of a teacher scoring event
type HomeworkReview struct {
	BaseModel
	HomeworkID    uint      `json:"homework_id" gorm:"not null"`
	TeacherUserID uint      `json:"teacher_user_id" gorm:"not null"`
	Score         float64   `json:"score" gorm:"not null;check:score BETWEEN 0 AND 100"`
	Feedback      string    `json:"feedback" gorm:"type:text"`
	ReviewedAt    time.Time `json:"reviewed_at" gorm:"autoCreateTime"`

	// Relationships
	Homework Homework `json:"homework,omitempty" gorm:"foreignKey:HomeworkID;constraint:OnDelete:CASCADE"`
	Teacher  User     `json:"teacher,omitempty" gorm:"foreignKey:TeacherUserID;constraint:OnDelete:RESTRICT"`
}

// Scenario model
type Scenario struct {
	BaseModel
	ScenarioCode            string `json:"scenario_code" gorm:"size:32;not null;uniqueIndex"`
	TeacherUserID           uint   `json:"teacher_user_id" gorm:"not null"`
	Theme                   string `json:"theme" gorm:"size:128;not null"`
	Difficulty              string `json:"difficulty" gorm:"size:64;not null"`
	Persona                 string `json:"persona" gorm:"size:64;not null"`
	GoalRequirePerfectTense bool   `json:"goal_require_perfect_tense" gorm:"default:false"`
	GoalRequireB1Vocab      bool   `json:"goal_require_b1_vocab" gorm:"default:false"`

	// Relationships
	Teacher User           `json:"teacher,omitempty" gorm:"foreignKey:TeacherUserID;constraint:OnDelete:RESTRICT"`
	Pushes  []ScenarioPush `json:"pushes,omitempty" gorm:"foreignKey:ScenarioID"`
}

// ScenarioPush model - at most one push per (scenario, student) pair
type ScenarioPush struct {
	BaseModel
	ScenarioID uint      `json:"scenario_id" gorm:"not null;uniqueIndex:uq_scenario_pushes_scenario_student,priority:1"`
	StudentID  uint      `json:"student_id" gorm:"not null;uniqueIndex:uq_scenario_pushes_scenario_student,priority:2"`
	PushStatus string    `json:"push_status" gorm:"size:32;not null;default:'pushed'"`
	PushedAt   time.Time `json:"pushed_at" gorm:"autoCreateTime"`

	// Relationships
	Scenario Scenario `json:"scenario,omitempty" gorm:"foreignKey:ScenarioID;constraint:OnDelete:CASCADE"`
	Student  Student  `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// Exam model
type Exam struct {
	BaseModel
	ExamCode      string `json:"exam_code" gorm:"size:32;not null;uniqueIndex"`
	TeacherUserID uint   `json:"teacher_user_id" gorm:"not null"`
	GrammarItems  int    `json:"grammar_items" gorm:"not null;check:grammar_items >= 0"`
	WritingItems  int    `json:"writing_items" gorm:"not null;check:writing_items >= 0"`
	Strategy      string `json:"strategy" gorm:"size:32;not null;check:strategy IN ('personalized','unified')"`
	FocusAreas    JSON   `json:"focus_areas" gorm:"type:json"`

	// Relationships
	Teacher     User             `json:"teacher,omitempty" gorm:"foreignKey:TeacherUserID;constraint:OnDelete:RESTRICT"`
	Assignments []ExamAssignment `json:"assignments,omitempty" gorm:"foreignKey:ExamID"`
}

// ExamAssignment model - at most one assignment per (exam, student) pair
type ExamAssignment struct {
	BaseModel
	ExamID     uint      `json:"exam_id" gorm:"not null;uniqueIndex:uq_exam_assignments_exam_student,priority:1"`
	StudentID  uint      `json:"student_id" gorm:"not null;uniqueIndex:uq_exam_assignments_exam_student,priority:2"`
	Status     string    `json:"status" gorm:"size:32;not null;default:'assigned'"`
	AssignedAt time.Time `json:"assigned_at" gorm:"autoCreateTime"`

	// Relationships
	Exam    Exam    `json:"exam,omitempty" gorm:"foreignKey:ExamID;constraint:OnDelete:CASCADE"`
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

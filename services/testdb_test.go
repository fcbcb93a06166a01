package services

import (
	"fmt"
	"testing"

	"deutschklasse_go/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema. Each
// test gets its own named shared-cache DSN so gorm's pool sees one database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb_%s?mode=memory&cache=shared", uuid.New().String()[:8])
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Classroom{},
		&models.Student{},
		&models.StudentAbility{},
		&models.Homework{},
		&models.HomeworkReview{},
		&models.Scenario{},
		&models.ScenarioPush{},
		&models.Exam{},
		&models.ExamAssignment{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

package services

import (
	"fmt"

	"deutschklasse_go/models"
	"deutschklasse_go/repository"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportClassroomRoster builds an xlsx workbook with one row per student of
// the classroom: profile scores plus the four ability dimensions.
func ExportClassroomRoster(db *gorm.DB, classroom *models.Classroom) (*excelize.File, error) {
	students, err := repository.ListStudentsByClass(db, classroom.ID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Roster"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"UID", "Name", "Class", "Active Score", "Overall Score", "Weak Point", "Listening", "Speaking", "Reading", "Writing"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, s := range students {
		ability, err := repository.GetAbilityByStudentID(db, s.ID)
		if err != nil {
			// Absent ability rows export as zeros rather than failing the sheet.
			ability = &models.StudentAbility{}
		}
		values := []interface{}{
			s.UID, s.Name, classroom.ClassName, s.ActiveScore, s.OverallScore, s.WeakPoint,
			ability.Listening, ability.Speaking, ability.Reading, ability.Writing,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// RosterExportFileName returns the download name for a classroom export.
func RosterExportFileName(classroom *models.Classroom) string {
	return fmt.Sprintf("roster-%s.xlsx", classroom.ClassCode)
}

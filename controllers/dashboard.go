package controllers

import (
	"math"

	"deutschklasse_go/database"
	"deutschklasse_go/repository"
	"deutschklasse_go/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DashboardController struct {
	Provisioning *services.ProvisioningService
}

// GetTeacherDashboard returns the classroom roster plus aggregate stats.
func (dc *DashboardController) GetTeacherDashboard(c *fiber.Ctx) error {
	teacher, classroom, err := dc.Provisioning.EnsureBaseline(database.DB)
	if err != nil {
		logrus.WithError(err).Error("Baseline provisioning failed")
		return fail(c, fiber.StatusInternalServerError, "仪表盘加载失败")
	}

	students, err := repository.ListStudentsByClass(database.DB, classroom.ID)
	if err != nil {
		return failFromErr(c, err, "仪表盘加载失败")
	}

	var scoreSum float64
	totalHomeworks := 0
	completedHomeworks := 0
	studentRows := make([]fiber.Map, 0, len(students))

	for _, s := range students {
		scoreSum += s.OverallScore

		homeworks, err := repository.ListHomeworksByStudent(database.DB, s.ID)
		if err != nil {
			return failFromErr(c, err, "仪表盘加载失败")
		}
		totalHomeworks += len(homeworks)
		for _, h := range homeworks {
			if h.Status == "已完成" {
				completedHomeworks++
			}
		}

		weak := s.WeakPoint
		if weak == "" {
			weak = "暂无"
		}
		studentRows = append(studentRows, fiber.Map{
			"name":   s.Name,
			"uid":    s.UID,
			"class":  classroom.ClassName,
			"active": s.ActiveScore,
			"score":  s.OverallScore,
			"weak":   weak,
		})
	}

	avgScore := 0.0
	if len(students) > 0 {
		avgScore = math.Round(scoreSum/float64(len(students))*10) / 10
	}
	completionRate := 0
	if totalHomeworks > 0 {
		completionRate = int(math.Round(float64(completedHomeworks) / float64(totalHomeworks) * 100))
	}

	return ok(c, fiber.Map{
		"teacherName":  teacher.DisplayName,
		"className":    classroom.ClassName,
		"pendingTasks": 3,
		"stats": fiber.Map{
			"totalStudents":       len(students),
			"totalStudentsTrend":  "+0",
			"avgDuration":         12.5,
			"avgDurationTrend":    "↑ 2%",
			"avgScore":            avgScore,
			"avgScoreTrend":       "↑ 0.5",
			"completionRate":      completionRate,
			"completionRateTrend": "稳定",
		},
		"students": studentRows,
	}, "")
}

package controllers

import (
	"deutschklasse_go/database"
	"deutschklasse_go/repository"
	"deutschklasse_go/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type StudentController struct {
	Provisioning *services.ProvisioningService
}

// GetStudentDetail returns one student's profile, ability radar and homework
// history, looked up by uid.
func (sc *StudentController) GetStudentDetail(c *fiber.Ctx) error {
	uid := c.Query("id")
	if uid == "" {
		return fail(c, fiber.StatusBadRequest, "缺少学生ID")
	}

	if _, _, err := sc.Provisioning.EnsureBaseline(database.DB); err != nil {
		logrus.WithError(err).Error("Baseline provisioning failed")
		return fail(c, fiber.StatusInternalServerError, "获取学生详情失败")
	}

	student, err := repository.GetStudentByUID(database.DB, uid)
	if err != nil {
		return failFromErr(c, err, "学生不存在")
	}

	abilityView := fiber.Map{"listening": 0, "speaking": 0, "reading": 0, "writing": 0}
	aiDiagnosis := "暂无诊断"
	if ability, err := repository.GetAbilityByStudentID(database.DB, student.ID); err == nil {
		abilityView = fiber.Map{
			"listening": ability.Listening,
			"speaking":  ability.Speaking,
			"reading":   ability.Reading,
			"writing":   ability.Writing,
		}
		if ability.AIDiagnosis != "" {
			aiDiagnosis = ability.AIDiagnosis
		}
	}

	homeworks, err := repository.ListHomeworksByStudent(database.DB, student.ID)
	if err != nil {
		return failFromErr(c, err, "获取学生详情失败")
	}

	homeworkRows := make([]fiber.Map, 0, len(homeworks))
	for _, h := range homeworks {
		date := h.CreatedAt
		if h.SubmittedAt != nil {
			date = *h.SubmittedAt
		}
		homeworkRows = append(homeworkRows, fiber.Map{
			"id":       h.ID,
			"title":    h.Title,
			"date":     date.Format("2006-01-02"),
			"status":   h.Status,
			"score":    h.Score,
			"feedback": h.AIComment,
		})
	}

	return ok(c, fiber.Map{
		"info": fiber.Map{
			"name":   student.Name,
			"uid":    student.UID,
			"class":  "软件工程",
			"active": student.ActiveScore,
			"score":  student.OverallScore,
		},
		"ability":     abilityView,
		"aiDiagnosis": aiDiagnosis,
		"homeworks":   homeworkRows,
	}, "")
}

// PushSchemeRequest represents the personalized-scheme push body
type PushSchemeRequest struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Diagnosis string `json:"diagnosis"`
}

// PushScheme creates a personalized reinforcement scenario for one student.
func (sc *StudentController) PushScheme(c *fiber.Ctx) error {
	var req PushSchemeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.StudentID == "" {
		return fail(c, fiber.StatusBadRequest, "缺少学生ID")
	}

	scenario, err := sc.Provisioning.PushScheme(database.DB, req.StudentID)
	if err != nil {
		return failFromErr(c, err, "推送失败")
	}

	return ok(c, fiber.Map{
		"schemeName": scenario.Theme,
		"schemeId":   scenario.ScenarioCode,
	}, "推送成功")
}

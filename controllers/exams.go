package controllers

import (
	"deutschklasse_go/database"
	"deutschklasse_go/services"

	"github.com/gofiber/fiber/v2"
)

type ExamController struct {
	Provisioning *services.ProvisioningService
}

// ExamConfigRequest mirrors the frontend exam generator payload
type ExamConfigRequest struct {
	GrammarItems *int     `json:"grammarItems"`
	WritingItems *int     `json:"writingItems"`
	Strategy     string   `json:"strategy"`
	FocusAreas   []string `json:"focusAreas"`
}

// GenerateExamRequest represents the generate body
type GenerateExamRequest struct {
	Config    ExamConfigRequest `json:"config"`
	Timestamp string            `json:"timestamp"`
}

// Generate creates an exam and assigns it to every student of the classroom.
func (ec *ExamController) Generate(c *fiber.Ctx) error {
	var req GenerateExamRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	grammarItems := 15
	if req.Config.GrammarItems != nil {
		grammarItems = *req.Config.GrammarItems
	}
	writingItems := 2
	if req.Config.WritingItems != nil {
		writingItems = *req.Config.WritingItems
	}

	exam, studentCount, err := ec.Provisioning.GenerateExam(database.DB, services.ExamConfig{
		GrammarItems: grammarItems,
		WritingItems: writingItems,
		Strategy:     req.Config.Strategy,
		FocusAreas:   req.Config.FocusAreas,
	})
	if err != nil {
		return failFromErr(c, err, "试卷生成失败")
	}

	return ok(c, fiber.Map{
		"examId":       exam.ExamCode,
		"studentCount": studentCount,
	}, "试卷生成成功")
}

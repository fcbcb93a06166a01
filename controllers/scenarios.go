package controllers

import (
	"deutschklasse_go/database"
	"deutschklasse_go/repository"
	"deutschklasse_go/services"

	"github.com/gofiber/fiber/v2"
)

type ScenarioController struct {
	Provisioning *services.ProvisioningService
}

// ScenarioGoals mirrors the frontend goal toggles
type ScenarioGoals struct {
	RequirePerfectTense bool `json:"requirePerfectTense"`
	RequireB1Vocab      bool `json:"requireB1Vocab"`
}

// ScenarioConfigRequest mirrors the frontend scenario editor payload
type ScenarioConfigRequest struct {
	Theme      string        `json:"theme"`
	Difficulty string        `json:"difficulty"`
	Persona    string        `json:"persona"`
	Goals      ScenarioGoals `json:"goals"`
}

// PublishScenarioRequest represents the publish body
type PublishScenarioRequest struct {
	Config    ScenarioConfigRequest `json:"config"`
	Timestamp string                `json:"timestamp"`
}

// Publish creates a scenario and pushes it to every student of the classroom.
// Each publish creates a fresh scenario row; only the per-student pushes
// deduplicate.
func (sc *ScenarioController) Publish(c *fiber.Ctx) error {
	var req PublishScenarioRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	scenario, pushes, err := sc.Provisioning.PublishScenario(database.DB, services.ScenarioConfig{
		Theme:               req.Config.Theme,
		Difficulty:          req.Config.Difficulty,
		Persona:             req.Config.Persona,
		RequirePerfectTense: req.Config.Goals.RequirePerfectTense,
		RequireB1Vocab:      req.Config.Goals.RequireB1Vocab,
	})
	if err != nil {
		return failFromErr(c, err, "任务发布失败")
	}

	return ok(c, fiber.Map{
		"scenarioId": scenario.ScenarioCode,
		"pushed":     len(pushes),
	}, "任务发布成功")
}

// RepushRequest represents the re-push body
type RepushRequest struct {
	ScenarioID string `json:"scenarioId"`
}

// Repush re-runs the fan-out of an existing scenario against the current
// roster. Students already pushed keep their row; newly added students gain
// exactly one.
func (sc *ScenarioController) Repush(c *fiber.Ctx) error {
	var req RepushRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.ScenarioID == "" {
		return fail(c, fiber.StatusBadRequest, "缺少场景ID")
	}

	_, classroom, err := sc.Provisioning.EnsureBaseline(database.DB)
	if err != nil {
		return failFromErr(c, err, "重新推送失败")
	}

	scenario, err := repository.GetScenarioByCode(database.DB, req.ScenarioID)
	if err != nil {
		return failFromErr(c, err, "场景不存在")
	}

	pushes, err := sc.Provisioning.PushExistingScenario(database.DB, scenario.ID, classroom.ID)
	if err != nil {
		return failFromErr(c, err, "重新推送失败")
	}

	return ok(c, fiber.Map{
		"scenarioId": scenario.ScenarioCode,
		"pushed":     len(pushes),
	}, "重新推送成功")
}

package controllers

import (
	"deutschklasse_go/database"
	"deutschklasse_go/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ExportController struct {
	Provisioning *services.ProvisioningService
}

// ExportRoster streams the classroom roster and ability scores as an xlsx
// workbook.
func (ec *ExportController) ExportRoster(c *fiber.Ctx) error {
	_, classroom, err := ec.Provisioning.EnsureBaseline(database.DB)
	if err != nil {
		logrus.WithError(err).Error("Baseline provisioning failed")
		return fail(c, fiber.StatusInternalServerError, "导出失败")
	}

	workbook, err := services.ExportClassroomRoster(database.DB, classroom)
	if err != nil {
		return failFromErr(c, err, "导出失败")
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "导出失败")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+services.RosterExportFileName(classroom)+`"`)
	return c.Send(buf.Bytes())
}

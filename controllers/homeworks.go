package controllers

import (
	"fmt"
	"strconv"
	"time"

	"deutschklasse_go/database"
	"deutschklasse_go/middleware"
	"deutschklasse_go/models"
	"deutschklasse_go/repository"
	"deutschklasse_go/services"
	"deutschklasse_go/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type HomeworkController struct {
	Provisioning *services.ProvisioningService
	Files        *storage.HomeworkFileStore // nil when S3 is not configured
}

// GetHomeworkDetail returns one homework's file metadata and AI comment.
func (hc *HomeworkController) GetHomeworkDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Query("id"), 10, 32)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "无效的作业ID")
	}

	if _, _, err := hc.Provisioning.EnsureBaseline(database.DB); err != nil {
		logrus.WithError(err).Error("Baseline provisioning failed")
		return fail(c, fiber.StatusInternalServerError, "获取作业详情失败")
	}

	homework, err := repository.GetHomeworkByID(database.DB, uint(id))
	if err != nil {
		return failFromErr(c, err, "作业不存在")
	}

	uploadTime := homework.CreatedAt
	if homework.SubmittedAt != nil {
		uploadTime = *homework.SubmittedAt
	}

	fileType := homework.FileType
	if fileType == "" {
		fileType = "text"
	}
	fileName := homework.FileName
	if fileName == "" {
		fileName = fmt.Sprintf("homework-%d", homework.ID)
	}
	fileSize := homework.FileSize
	if fileSize == "" {
		fileSize = "Unknown"
	}
	aiComment := homework.AIComment
	if aiComment == "" {
		aiComment = "暂无 AI 评价数据。"
	}

	fileURL := homework.FileURL
	// Files uploaded through this service store an S3 key; hand out a
	// short-lived download link instead of the raw key.
	if hc.Files != nil && homework.FileURL != "" && !isHTTPURL(homework.FileURL) {
		if presigned, err := hc.Files.PresignDownload(c.Context(), homework.FileURL, 15*time.Minute); err == nil {
			fileURL = presigned
		} else {
			logrus.WithError(err).Warn("Failed to presign homework download")
		}
	}

	return ok(c, fiber.Map{
		"type": fileType,
		"meta": fiber.Map{
			"fileUrl":    fileURL,
			"fileName":   fileName,
			"fileSize":   fileSize,
			"uploadTime": uploadTime.Format("2006-01-02 15:04"),
		},
		"aiComment": aiComment,
	}, "")
}

// SaveHomeworkRequest represents the review-save body
type SaveHomeworkRequest struct {
	HomeworkID uint    `json:"homeworkId"`
	Score      float64 `json:"score"`
	Feedback   string  `json:"feedback"`
}

// SaveReview records the teacher's scoring event and applies the partial
// score/feedback update.
func (hc *HomeworkController) SaveReview(c *fiber.Ctx) error {
	var req SaveHomeworkRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	teacher, err := middleware.GetCurrentUser(c)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "未登录")
	}

	if _, _, err := hc.Provisioning.EnsureBaseline(database.DB); err != nil {
		logrus.WithError(err).Error("Baseline provisioning failed")
		return fail(c, fiber.StatusInternalServerError, "评分保存失败")
	}

	if _, err := services.SaveHomeworkReview(database.DB, teacher.ID, req.HomeworkID, req.Score, req.Feedback); err != nil {
		return failFromErr(c, err, "评分保存失败")
	}

	return ok(c, fiber.Map{"homeworkId": req.HomeworkID, "saved": true}, "评分保存成功")
}

// UploadFile attaches a submitted file to a homework row.
func (hc *HomeworkController) UploadFile(c *fiber.Ctx) error {
	if hc.Files == nil {
		return fail(c, fiber.StatusServiceUnavailable, "文件存储未配置")
	}

	id, err := strconv.ParseUint(c.FormValue("homeworkId"), 10, 32)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "无效的作业ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "缺少文件")
	}

	homework, err := repository.GetHomeworkByID(database.DB, uint(id))
	if err != nil {
		return failFromErr(c, err, "作业不存在")
	}

	var student models.Student
	if err := database.DB.First(&student, homework.StudentID).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "上传失败")
	}

	result, err := hc.Files.Upload(c.Context(), fileHeader, student.UID)
	if err != nil {
		logrus.WithError(err).Error("Homework upload failed")
		return fail(c, fiber.StatusInternalServerError, "上传失败")
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{
		"file_type":    result.FileType,
		"file_url":     result.Key,
		"file_name":    result.FileName,
		"file_size":    result.FileSize,
		"status":       "已完成",
		"submitted_at": &now,
	}
	if err := database.DB.Model(homework).Updates(updates).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "上传失败")
	}

	return ok(c, fiber.Map{
		"homeworkId": homework.ID,
		"fileName":   result.FileName,
		"fileSize":   result.FileSize,
	}, "上传成功")
}

func isHTTPURL(s string) bool {
	return len(s) > 4 && s[:4] == "http"
}

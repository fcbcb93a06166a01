package controllers

import (
	"errors"
	"fmt"

	"deutschklasse_go/database"
	"deutschklasse_go/middleware"
	"deutschklasse_go/models"
	"deutschklasse_go/repository"
	"deutschklasse_go/services"
	"deutschklasse_go/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	Provisioning *services.ProvisioningService
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a JWT token. An unknown username
// silently provisions a teacher account - kept on purpose to match the demo
// login flow, flagged as unsuitable for real authentication.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Username == "" {
		return fail(c, fiber.StatusBadRequest, "Username is required")
	}

	if _, _, err := ac.Provisioning.EnsureBaseline(database.DB); err != nil {
		logrus.WithError(err).Error("Baseline provisioning failed")
		return fail(c, fiber.StatusInternalServerError, "登录失败")
	}

	user, err := repository.GetUserByUsername(database.DB, req.Username)
	if errors.Is(err, repository.ErrNotFound) {
		hash, hashErr := utils.HashPassword(req.Password)
		if hashErr != nil {
			return fail(c, fiber.StatusInternalServerError, "登录失败")
		}
		user, err = repository.CreateUser(database.DB, repository.CreateUserInput{
			Username:     req.Username,
			PasswordHash: hash,
			Role:         models.RoleTeacher,
			DisplayName:  fmt.Sprintf("%s老师", req.Username),
		})
	} else if err == nil {
		if pwErr := utils.CheckPassword(req.Password, user.Password); pwErr != nil {
			return fail(c, fiber.StatusUnauthorized, "用户名或密码错误")
		}
	}
	if err != nil {
		logrus.WithError(err).WithField("username", req.Username).Error("Login failed")
		return fail(c, fiber.StatusInternalServerError, "登录失败")
	}

	token, err := middleware.GenerateToken(user)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "登录失败")
	}

	userInfo := fiber.Map{
		"id":   user.Username,
		"name": user.DisplayName,
		"role": user.Role,
	}
	return c.JSON(fiber.Map{
		"code":    fiber.StatusOK,
		"message": "登录成功",
		"token":   token,
		"user":    userInfo,
		"data":    fiber.Map{"token": token, "user": userInfo},
	})
}

package repository

import (
	"fmt"

	"deutschklasse_go/models"
	"deutschklasse_go/utils"

	"gorm.io/gorm"
)

// CreateUserInput enumerates every field accepted when creating a user.
type CreateUserInput struct {
	Username     string
	PasswordHash string
	Role         string
	DisplayName  string
}

// CreateUser persists one new user and returns it fully populated.
func CreateUser(db *gorm.DB, in CreateUserInput) (*models.User, error) {
	if !utils.IsValidRole(in.Role) {
		return nil, fmt.Errorf("%w: invalid role %q", ErrValidation, in.Role)
	}
	if in.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	user := models.User{
		Username:    in.Username,
		Password:    in.PasswordHash,
		Role:        in.Role,
		DisplayName: in.DisplayName,
		Active:      true,
	}
	if err := db.Create(&user).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, fmt.Errorf("%w: username %q", ErrDuplicate, in.Username)
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername returns the matching user or ErrNotFound.
func GetUserByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFoundOrErr(err)
	}
	return &user, nil
}

// GetUserByID returns the matching user or ErrNotFound.
func GetUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, notFoundOrErr(err)
	}
	return &user, nil
}

package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fintrack-go-be/auth"
	"fintrack-go-be/models"
	"fintrack-go-be/validation"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the signin payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// userJSON is the account summary returned by auth and profile routes.
// Password hashes never leave the store layer.
func userJSON(u *models.User) fiber.Map {
	return fiber.Map{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"createdAt": u.CreatedAt,
	}
}

// Register creates an account, provisions the default categories and signs
// the caller in.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	// Distinguish which unique field collides; login deliberately does the
	// opposite and stays generic.
	var count int64
	if err := h.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return h.serverError(c, err, "register: username lookup failed")
	}
	if count > 0 {
		return fail(c, fiber.StatusConflict, "Username is already taken")
	}
	if err := h.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return h.serverError(c, err, "register: email lookup failed")
	}
	if count > 0 {
		return fail(c, fiber.StatusConflict, "Email is already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return h.serverError(c, err, "register: password hashing failed")
	}

	user := models.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		for _, dc := range models.DefaultCategories {
			cat := models.Category{UserID: user.ID, Name: dc.Name, Color: dc.Color, Icon: dc.Icon}
			if err := tx.Create(&cat).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return h.serverError(c, err, "register: account creation failed")
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		return h.serverError(c, err, "register: token issuance failed")
	}

	h.log.Info("account registered", "user_id", user.ID, "username", user.Username)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"ok":      true,
		"message": "Account created successfully",
		"token":   token,
		"user":    userJSON(&user),
	})
}

// Login verifies credentials. The 401 body is identical whether the account
// is missing or the password is wrong.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	var user models.User
	err := h.db.Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return h.serverError(c, err, "login: account lookup failed")
	}

	match, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.tokens.Issue(&user)
	if err != nil {
		return h.serverError(c, err, "login: token issuance failed")
	}

	return c.JSON(fiber.Map{
		"ok":    true,
		"token": token,
		"user":  userJSON(&user),
	})
}

// Me returns the authenticated account's current summary.
func (h *Handler) Me(c *fiber.Ctx) error {
	claims := h.claims(c)

	var user models.User
	if err := h.db.First(&user, "id = ?", claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Account")
		}
		return h.serverError(c, err, "me: account lookup failed")
	}
	return c.JSON(fiber.Map{"ok": true, "user": userJSON(&user)})
}

// ForgotPassword always answers 200 so callers cannot probe which emails
// exist. When the account is real, a purpose-scoped reset token goes out by
// mail.
func (h *Handler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	var user models.User
	err := h.db.Where("email = ?", req.Email).First(&user).Error
	if err == nil {
		token, terr := h.tokens.IssuePurpose(&user, auth.PurposePasswordReset)
		if terr != nil {
			h.log.Error("forgot-password: token issuance failed", "error", terr)
		} else {
			link := fmt.Sprintf("%s/reset-password?token=%s", h.cfg.AppBaseURL, token)
			if merr := h.mail.SendPasswordReset(user.Email, link); merr != nil {
				h.log.Error("forgot-password: mail dispatch failed", "error", merr)
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		h.log.Error("forgot-password: account lookup failed", "error", err)
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "If that email is registered, a reset link is on its way",
	})
}

// ResetPassword redeems a purpose-scoped token and stores a fresh hash.
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if issues := validation.Struct(req); issues != nil {
		return failValidation(c, issues)
	}

	claims, err := h.tokens.VerifyPurpose(req.Token, auth.PurposePasswordReset)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Reset link is invalid or has expired")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return h.serverError(c, err, "reset-password: hashing failed")
	}

	res := h.db.Model(&models.User{}).Where("id = ?", claims.UserID).Update("password_hash", hash)
	if res.Error != nil {
		return h.serverError(c, res.Error, "reset-password: update failed")
	}
	if res.RowsAffected == 0 {
		return fail(c, fiber.StatusBadRequest, "Reset link is invalid or has expired")
	}

	h.log.Info("password reset completed", "user_id", claims.UserID)
	return c.JSON(fiber.Map{"ok": true, "message": "Password updated successfully"})
}

package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"resultdesk/app/config"
	"resultdesk/app/database"
	"resultdesk/app/services"

	"github.com/gofiber/fiber/v2"
)

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: "Lax",
	})
}

// POST /auth/login
func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password are required"})
	}

	admin, err := database.GetAdminByUsername(config.GetDB(), username)
	if err != nil {
		if err == sql.ErrNoRows {
			// Unknown user and wrong password look identical to the caller.
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if !CheckPasswordHash(req.Password, admin.PasswordHash) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}

	token, err := GenerateSession(admin.Username, KindAdmin, MethodPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    admin,
	})
}

// POST /auth/otp/request
func RequestOTPAPI(c *fiber.Ctx) error {
	type OTPRequest struct {
		Username string `json:"username"`
	}

	var req OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username is required"})
	}

	admin, err := database.GetAdminByUsername(config.GetDB(), username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Unknown username"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	code, err := Challenges.Issue(username)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate code"})
	}

	// Delivery is best effort: the challenge is live whether or not the email
	// goes out. When it cannot go out, the code is disclosed in the response
	// as an ops fallback for deployments without mail.
	resp := fiber.Map{
		"sent":               false,
		"expires_in_seconds": int(OTPTTL.Seconds()),
	}
	if admin.Email == "" {
		resp["message"] = "No email registered for this admin. Code included for manual use."
		resp["otp"] = code
		return c.JSON(resp)
	}

	if err := services.SendOTP(admin.Email, code); err != nil {
		resp["message"] = "Failed to send email. Code included for manual use."
		resp["otp"] = code
		return c.JSON(resp)
	}

	resp["sent"] = true
	resp["message"] = fmt.Sprintf("Code sent to %s (check spam)", admin.Email)
	return c.JSON(resp)
}

// POST /auth/otp/verify
func VerifyOTPAPI(c *fiber.Ctx) error {
	type OTPVerifyRequest struct {
		Username string `json:"username"`
		Code     string `json:"code"`
	}

	var req OTPVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and code are required"})
	}

	switch err := Challenges.Verify(username, req.Code); {
	case errors.Is(err, ErrNoChallenge):
		return c.Status(401).JSON(fiber.Map{"error": "No active code for this user. Request a new one."})
	case errors.Is(err, ErrExpired):
		return c.Status(401).JSON(fiber.Map{"error": "Code expired. Request a new one."})
	case errors.Is(err, ErrCodeMismatch):
		return c.Status(401).JSON(fiber.Map{"error": "Incorrect code"})
	case err != nil:
		return c.Status(500).JSON(fiber.Map{"error": "Verification failed"})
	}

	token, err := GenerateSession(username, KindAdmin, MethodOTP)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// GET /auth/security-question?username=...
func SecurityQuestionAPI(c *fiber.Ctx) error {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username is required"})
	}

	profile, err := database.GetSecurityProfile(config.GetDB(), username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "No security question set for this user"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{"question": profile.Question})
}

// POST /auth/security-login
func SecurityLoginAPI(c *fiber.Ctx) error {
	type SecurityLoginRequest struct {
		Username string `json:"username"`
		Answer   string `json:"answer"`
	}

	var req SecurityLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Answer) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and answer are required"})
	}

	profile, err := database.GetSecurityProfile(config.GetDB(), username)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "No security question set for this user"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if !CheckAnswerHash(req.Answer, profile.AnswerHash) {
		return c.Status(401).JSON(fiber.Map{"error": "Incorrect answer"})
	}

	token, err := GenerateSession(username, KindAdmin, MethodSecurityQuestion)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	setSessionCookie(c, token)

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}

// POST /auth/change-password
func ChangePasswordAPI(c *fiber.Ctx) error {
	type ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"error": "New password is required"})
	}

	username := c.Locals("principal").(string)

	admin, err := database.GetAdminByUsername(config.GetDB(), username)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if !CheckPasswordHash(req.CurrentPassword, admin.PasswordHash) {
		return c.Status(400).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashedPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	if err := database.UpdateAdminPassword(config.GetDB(), username, hashedPassword); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// POST /auth/security-question
func SetSecurityQuestionAPI(c *fiber.Ctx) error {
	type SetQuestionRequest struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	}

	var req SetQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	question := strings.TrimSpace(req.Question)
	if question == "" || strings.TrimSpace(req.Answer) == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Question and answer are required"})
	}

	username := c.Locals("principal").(string)

	answerHash, err := HashAnswer(req.Answer)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash answer"})
	}

	if err := database.SetSecurityProfile(config.GetDB(), username, question, answerHash); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to save security question"})
	}

	return c.JSON(fiber.Map{"message": "Security question saved"})
}

// POST /auth/email
func SetEmailAPI(c *fiber.Ctx) error {
	type SetEmailRequest struct {
		Email string `json:"email"`
	}

	var req SetEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return c.Status(400).JSON(fiber.Map{"error": "A valid email is required"})
	}

	username := c.Locals("principal").(string)

	if err := database.SetAdminEmail(config.GetDB(), username, email); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update email"})
	}

	return c.JSON(fiber.Map{"message": "Email updated"})
}

// GET /auth/profile
func ProfileAPI(c *fiber.Ctx) error {
	username := c.Locals("principal").(string)

	admin, err := database.GetAdminByUsername(config.GetDB(), username)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"user":        admin,
		"auth_method": c.Locals("auth_method"),
	})
}

// POST /auth/logout
func LogoutAPI(c *fiber.Ctx) error {
	// Clear JWT cookie
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}

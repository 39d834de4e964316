package results

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"resultdesk/app/config"
	"resultdesk/app/database"
	"resultdesk/app/models"
	"resultdesk/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// dobLayout is the only accepted date-of-birth format: zero-padded
// day-month-year, e.g. 15-08-2007.
const dobLayout = "02-01-2006"

var ErrStudentNotFound = errors.New("student not found")

// ValidDOB reports whether the input parses as a calendar date in the fixed
// DD-MM-YYYY format. This runs before any lookup, so a malformed date is a
// distinct failure from a wrong one.
func ValidDOB(input string) bool {
	_, err := time.Parse(dobLayout, input)
	return err == nil
}

// dobMatches compares the stored DOB string to the input byte-for-byte after
// trimming. A calendar-equal date in another format does not match.
func dobMatches(stored, input string) bool {
	return strings.TrimSpace(stored) == strings.TrimSpace(input)
}

// POST /api/students/login
func StudentLoginAPI(c *fiber.Ctx) error {
	type StudentLoginRequest struct {
		Roll string `json:"roll"`
		DOB  string `json:"dob"`
	}

	var req StudentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	roll := strings.TrimSpace(req.Roll)
	dob := strings.TrimSpace(req.DOB)
	if roll == "" || dob == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Roll number and date of birth are required"})
	}
	if !ValidDOB(dob) {
		return c.Status(400).JSON(fiber.Map{"error": "Date of birth must be DD-MM-YYYY"})
	}

	student, err := database.GetStudentByRoll(config.GetDB(), roll)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid roll number or date of birth"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if !dobMatches(student.DOB, dob) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid roll number or date of birth"})
	}

	token, err := auth.GenerateSession(student.Roll, auth.KindStudent, auth.MethodRollDOB)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"student": fiber.Map{"roll": student.Roll, "name": student.Name, "class": student.Class},
	})
}

func computeResult(db *sql.DB, roll string) (*models.ResultSummary, error) {
	student, err := database.GetStudentByRoll(db, roll)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}

	marks, err := database.GetMarksByRoll(db, roll)
	if err != nil {
		return nil, err
	}
	return Summarize(student, marks), nil
}

func resultResponse(c *fiber.Ctx, roll string) error {
	summary, err := computeResult(config.GetDB(), roll)
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute result"})
	}
	return c.JSON(summary)
}

// GET /api/results/me (student session)
func MyResultAPI(c *fiber.Ctx) error {
	roll := c.Locals("roll").(string)
	return resultResponse(c, roll)
}

// GET /api/results/:roll (admin session)
func GetResultAPI(c *fiber.Ctx) error {
	roll := strings.TrimSpace(c.Params("roll"))
	if roll == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Roll number is required"})
	}
	return resultResponse(c, roll)
}

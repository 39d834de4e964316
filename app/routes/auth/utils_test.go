package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.True(t, CheckPasswordHash("s3cret", hash))
	require.False(t, CheckPasswordHash("S3cret", hash))
	require.False(t, CheckPasswordHash("", hash))
}

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Blue", "blue"},
		{"  blue  ", "blue"},
		{"\tBLUE\n", "blue"},
		{"two words", "two words"},
		{"", ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizeAnswer(tt.in))
	}
}

func TestAnswerVerificationIsCaseAndWhitespaceInsensitive(t *testing.T) {
	hash, err := HashAnswer("  My First Pet ")
	require.NoError(t, err)

	require.True(t, CheckAnswerHash("my first pet", hash))
	require.True(t, CheckAnswerHash("MY FIRST PET  ", hash))
	require.False(t, CheckAnswerHash("my first cat", hash))
}

func TestSessionRoundtrip(t *testing.T) {
	token, err := GenerateSession("admin", KindAdmin, MethodOTP)
	require.NoError(t, err)

	claims, err := ValidateSession(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Principal)
	require.Equal(t, KindAdmin, claims.Kind)
	require.Equal(t, MethodOTP, claims.Method)
	require.NotEmpty(t, claims.ID)
}

func TestValidateSessionRejectsGarbage(t *testing.T) {
	_, err := ValidateSession("not.a.token")
	require.Error(t, err)

	token, err := GenerateSession("admin", KindAdmin, MethodPassword)
	require.NoError(t, err)
	_, err = ValidateSession(token + "tampered")
	require.Error(t, err)
}

func newMiddlewareApp(mw fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", mw, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"principal": c.Locals("principal"), "roll": c.Locals("roll")})
	})
	return app
}

func TestAdminRequired(t *testing.T) {
	app := newMiddlewareApp(AdminRequired)

	// No token
	req := httptest.NewRequest("GET", "/guarded", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 401, resp.StatusCode)

	// Student session on an admin route
	studentToken, err := GenerateSession("S-1", KindStudent, MethodRollDOB)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)

	// Admin session
	adminToken, err := GenerateSession("admin", KindAdmin, MethodPassword)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

func TestStudentRequired(t *testing.T) {
	app := newMiddlewareApp(StudentRequired)

	adminToken, err := GenerateSession("admin", KindAdmin, MethodPassword)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 403, resp.StatusCode)

	studentToken, err := GenerateSession("S-1", KindStudent, MethodRollDOB)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}

package models

import "time"

type Admin struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// SecurityProfile is an admin's fallback question/answer pair. The answer is
// stored only as a digest of its normalized form.
type SecurityProfile struct {
	Username   string `json:"username"`
	Question   string `json:"question"`
	AnswerHash string `json:"-"`
}

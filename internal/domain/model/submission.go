package model

import "time"

type SubmissionStatus string

const (
	SubmissionDraft    SubmissionStatus = "draft"
	SubmissionAccepted SubmissionStatus = "accepted"
)

// SubmissionRecord is the latest known code for a (problem, user, language)
// triple. One row per triple; writes are upserts, never appends.
type SubmissionRecord struct {
	ID          int64            `json:"id"`
	ProblemID   int64            `json:"problem_id"`
	UserID      string           `json:"user_id"`
	Language    string           `json:"language"`
	UserCode    string           `json:"user_code"`
	LogicCode   string           `json:"logic_code"`
	Status      SubmissionStatus `json:"status"`
	SubmittedAt time.Time        `json:"submitted_at"`
}

// PointsRecord is the single awarded value for a (problem, user) pair,
// independent of language.
type PointsRecord struct {
	ProblemID int64     `json:"problem_id"`
	UserID    string    `json:"user_id"`
	Points    int       `json:"points"`
	UpdatedAt time.Time `json:"updated_at"`
}

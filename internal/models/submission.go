package models

import (
	"errors"
	"strings"
	"time"
)

const (
	StatusAccepted    = "Accepted"
	StatusWrongAnswer = "Wrong Answer"
)

// Submission summarizes one execution request. The stdout, stderr,
// compile_output, memory and time columns hold JSON-serialized arrays
// parallel to the stdin list; the optional ones stay NULL when no case
// produced a value.
type Submission struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	ProblemID     string    `db:"problem_id" json:"problem_id"`
	SourceCode    string    `db:"source_code" json:"source_code"`
	Language      string    `db:"language" json:"language"`
	Stdin         string    `db:"stdin" json:"stdin"`
	Stdout        string    `db:"stdout" json:"stdout"`
	Stderr        *string   `db:"stderr" json:"stderr,omitempty"`
	CompileOutput *string   `db:"compile_output" json:"compile_output,omitempty"`
	Status        string    `db:"status" json:"status"`
	Memory        *string   `db:"memory" json:"memory,omitempty"`
	Time          *string   `db:"time" json:"time,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`

	TestCaseResults []TestCaseResult `db:"-" json:"test_case_results,omitempty"`
}

// TestCaseResult is owned exclusively by its Submission and is removed
// together with it.
type TestCaseResult struct {
	ID            string    `db:"id" json:"id"`
	SubmissionID  string    `db:"submission_id" json:"submission_id"`
	TestCase      int       `db:"test_case" json:"test_case"`
	Passed        bool      `db:"passed" json:"passed"`
	Stdout        string    `db:"stdout" json:"stdout"`
	Expected      string    `db:"expected" json:"expected"`
	Stderr        *string   `db:"stderr" json:"stderr,omitempty"`
	CompileOutput *string   `db:"compile_output" json:"compile_output,omitempty"`
	Status        string    `db:"status" json:"status"`
	Memory        *string   `db:"memory" json:"memory,omitempty"`
	Time          *string   `db:"time" json:"time,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

type ExecutionRequest struct {
	SourceCode      string   `json:"source_code"`
	LanguageID      int      `json:"language_id"`
	Stdin           []string `json:"stdin"`
	ExpectedOutputs []string `json:"expected_outputs"`
	ProblemID       string   `json:"problem_id"`
}

func (r *ExecutionRequest) Validate() error {
	if strings.TrimSpace(r.SourceCode) == "" {
		return errors.New("source code cannot be empty")
	}
	if r.LanguageID <= 0 {
		return errors.New("language ID must be a positive integer")
	}
	if strings.TrimSpace(r.ProblemID) == "" {
		return errors.New("problem ID is required")
	}
	if len(r.Stdin) == 0 {
		return errors.New("invalid or missing testcases")
	}
	if len(r.ExpectedOutputs) != len(r.Stdin) {
		return errors.New("invalid or missing testcases")
	}
	return nil
}

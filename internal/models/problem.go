package models

import (
	"errors"
	"strings"
	"time"
)

const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"
)

type Problem struct {
	ID                 string       `db:"id" json:"id"`
	Title              string       `db:"title" json:"title"`
	Description        string       `db:"description" json:"description"`
	Difficulty         string       `db:"difficulty" json:"difficulty"`
	Tags               StringSlice  `db:"tags" json:"tags"`
	Examples           ExampleList  `db:"examples" json:"examples"`
	Constraints        string       `db:"constraints" json:"constraints"`
	Testcases          TestCaseList `db:"testcases" json:"testcases"`
	CodeSnippets       StringMap    `db:"code_snippets" json:"code_snippets"`
	ReferenceSolutions StringMap    `db:"reference_solutions" json:"reference_solutions"`
	CreatedBy          string       `db:"created_by" json:"created_by"`
	CreatedAt          time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at" json:"updated_at"`
}

type ProblemRequest struct {
	Title              string       `json:"title" binding:"required"`
	Description        string       `json:"description" binding:"required"`
	Difficulty         string       `json:"difficulty" binding:"required"`
	Tags               StringSlice  `json:"tags"`
	Examples           ExampleList  `json:"examples"`
	Constraints        string       `json:"constraints"`
	Testcases          TestCaseList `json:"testcases"`
	CodeSnippets       StringMap    `json:"code_snippets"`
	ReferenceSolutions StringMap    `json:"reference_solutions"`
}

func (r *ProblemRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("title cannot be empty")
	}
	switch r.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return errors.New("difficulty must be one of EASY, MEDIUM, HARD")
	}
	if len(r.Testcases) == 0 {
		return errors.New("at least one testcase is required")
	}
	if len(r.ReferenceSolutions) == 0 {
		return errors.New("at least one reference solution is required")
	}
	return nil
}

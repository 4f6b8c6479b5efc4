package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"codeclimb/internal/common"
	"codeclimb/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SubmissionRepository interface {
	// CreateWithResults persists the submission summary, the solved marker
	// (when accepted) and the per-case rows in one transaction, then
	// returns the submission re-read with its children attached.
	CreateWithResults(ctx context.Context, submission *models.Submission, results []models.TestCaseResult, solved bool) (*models.Submission, error)
	GetSubmissionByID(ctx context.Context, submissionID string) (*models.Submission, error)
	GetSubmissionsByUser(ctx context.Context, userID string) ([]models.Submission, error)
	GetSubmissionsByUserAndProblem(ctx context.Context, userID, problemID string) ([]models.Submission, error)
	CountSubmissionsForProblem(ctx context.Context, problemID string) (int, error)
	IsProblemSolved(ctx context.Context, userID, problemID string) (bool, error)
}

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) CreateWithResults(ctx context.Context, submission *models.Submission, results []models.TestCaseResult, solved bool) (*models.Submission, error) {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", common.ErrExecutionPersistenceFailed)
	}
	defer tx.Rollback()

	insertSubmission := `INSERT INTO submissions
              (id, user_id, problem_id, source_code, language, stdin, stdout,
               stderr, compile_output, status, memory, time)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertSubmission,
		submission.ID, submission.UserID, submission.ProblemID,
		submission.SourceCode, submission.Language, submission.Stdin,
		submission.Stdout, submission.Stderr, submission.CompileOutput,
		submission.Status, submission.Memory, submission.Time,
	); err != nil {
		return nil, fmt.Errorf("failed to insert submission: %v: %w", err, common.ErrExecutionPersistenceFailed)
	}

	if solved {
		// Idempotent marker: re-solving the same problem is a no-op.
		upsert := `INSERT INTO problem_solved (id, user_id, problem_id)
                  VALUES (?, ?, ?)
                  ON DUPLICATE KEY UPDATE problem_id = problem_id`
		if _, err := tx.ExecContext(ctx, upsert, uuid.NewString(), submission.UserID, submission.ProblemID); err != nil {
			return nil, fmt.Errorf("failed to upsert solved marker: %v: %w", err, common.ErrExecutionPersistenceFailed)
		}
	}

	insertResult := `INSERT INTO test_case_results
              (id, submission_id, test_case, passed, stdout, expected,
               stderr, compile_output, status, memory, time)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range results {
		if results[i].ID == "" {
			results[i].ID = uuid.NewString()
		}
		results[i].SubmissionID = submission.ID
		if _, err := tx.ExecContext(ctx, insertResult,
			results[i].ID, results[i].SubmissionID, results[i].TestCase,
			results[i].Passed, results[i].Stdout, results[i].Expected,
			results[i].Stderr, results[i].CompileOutput, results[i].Status,
			results[i].Memory, results[i].Time,
		); err != nil {
			return nil, fmt.Errorf("failed to insert test case result: %v: %w", err, common.ErrExecutionPersistenceFailed)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit execution results: %v: %w", err, common.ErrExecutionPersistenceFailed)
	}

	stored, err := r.GetSubmissionByID(ctx, submission.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read submission: %v: %w", err, common.ErrExecutionPersistenceFailed)
	}
	return stored, nil
}

const submissionColumns = `id, user_id, problem_id, source_code, language, stdin, stdout,
              stderr, compile_output, status, memory, time, created_at`

func (r *submissionRepository) GetSubmissionByID(ctx context.Context, submissionID string) (*models.Submission, error) {
	var submission models.Submission
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = ?`
	if err := r.db.GetContext(ctx, &submission, query, submissionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("submission %s: %w", submissionID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	resultsQuery := `SELECT id, submission_id, test_case, passed, stdout, expected,
                  stderr, compile_output, status, memory, time, created_at
              FROM test_case_results
              WHERE submission_id = ?
              ORDER BY test_case`
	if err := r.db.SelectContext(ctx, &submission.TestCaseResults, resultsQuery, submissionID); err != nil {
		return nil, fmt.Errorf("failed to get test case results: %w", err)
	}

	return &submission, nil
}

func (r *submissionRepository) GetSubmissionsByUser(ctx context.Context, userID string) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
              WHERE user_id = ? ORDER BY created_at DESC`

	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get user submissions: %w", err)
	}
	return submissions, nil
}

func (r *submissionRepository) GetSubmissionsByUserAndProblem(ctx context.Context, userID, problemID string) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions
              WHERE user_id = ? AND problem_id = ? ORDER BY created_at DESC`

	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, userID, problemID); err != nil {
		return nil, fmt.Errorf("failed to get user submissions for problem: %w", err)
	}
	return submissions, nil
}

func (r *submissionRepository) CountSubmissionsForProblem(ctx context.Context, problemID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM submissions WHERE problem_id = ?`
	if err := r.db.GetContext(ctx, &count, query, problemID); err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return count, nil
}

func (r *submissionRepository) IsProblemSolved(ctx context.Context, userID, problemID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM problem_solved WHERE user_id = ? AND problem_id = ?`
	if err := r.db.GetContext(ctx, &count, query, userID, problemID); err != nil {
		return false, fmt.Errorf("failed to check solved marker: %w", err)
	}
	return count > 0, nil
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"codeclimb/internal/common"
	"codeclimb/internal/logger"
	"codeclimb/internal/models"
	"codeclimb/internal/services"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const problemCacheTTL = 1 * time.Hour

type ProblemRepository interface {
	CreateProblem(ctx context.Context, problem *models.Problem) error
	UpdateProblem(ctx context.Context, problem *models.Problem) error
	DeleteProblem(ctx context.Context, problemID string) error
	GetProblemByID(ctx context.Context, problemID string) (*models.Problem, error)
	GetProblems(ctx context.Context) ([]models.Problem, error)
	GetProblemsSolvedByUser(ctx context.Context, userID string) ([]models.Problem, error)
}

type problemRepository struct {
	db    *sqlx.DB
	cache services.Cache
}

func NewProblemRepository(db *sqlx.DB, cache services.Cache) ProblemRepository {
	return &problemRepository{db: db, cache: cache}
}

const problemColumns = `id, title, description, difficulty, tags, examples, constraints,
              testcases, code_snippets, reference_solutions, created_by, created_at, updated_at`

func problemCacheKey(problemID string) string {
	return fmt.Sprintf("problem:%s", problemID)
}

func (r *problemRepository) CreateProblem(ctx context.Context, problem *models.Problem) error {
	if problem.ID == "" {
		problem.ID = uuid.NewString()
	}

	query := `INSERT INTO problems (id, title, description, difficulty, tags, examples,
                  constraints, testcases, code_snippets, reference_solutions, created_by)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		problem.ID, problem.Title, problem.Description, problem.Difficulty,
		problem.Tags, problem.Examples, problem.Constraints, problem.Testcases,
		problem.CodeSnippets, problem.ReferenceSolutions, problem.CreatedBy,
	); err != nil {
		return fmt.Errorf("failed to create problem: %w", err)
	}
	return nil
}

func (r *problemRepository) UpdateProblem(ctx context.Context, problem *models.Problem) error {
	query := `UPDATE problems
              SET title = ?, description = ?, difficulty = ?, tags = ?, examples = ?,
                  constraints = ?, testcases = ?, code_snippets = ?, reference_solutions = ?
              WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		problem.Title, problem.Description, problem.Difficulty, problem.Tags,
		problem.Examples, problem.Constraints, problem.Testcases,
		problem.CodeSnippets, problem.ReferenceSolutions, problem.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update problem: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("problem %s: %w", problem.ID, common.ErrNotFound)
	}

	_ = r.cache.Delete(ctx, problemCacheKey(problem.ID))
	return nil
}

func (r *problemRepository) DeleteProblem(ctx context.Context, problemID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM problems WHERE id = ?`, problemID)
	if err != nil {
		return fmt.Errorf("failed to delete problem: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("problem %s: %w", problemID, common.ErrNotFound)
	}

	_ = r.cache.Delete(ctx, problemCacheKey(problemID))
	return nil
}

func (r *problemRepository) GetProblemByID(ctx context.Context, problemID string) (*models.Problem, error) {
	cacheKey := problemCacheKey(problemID)

	var problem models.Problem
	if err := r.cache.Get(ctx, cacheKey, &problem); err == nil {
		logger.Log.Debug("Problem cache hit", zap.String("problem_id", problemID))
		return &problem, nil
	}

	query := `SELECT ` + problemColumns + ` FROM problems WHERE id = ?`
	if err := r.db.GetContext(ctx, &problem, query, problemID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("problem %s: %w", problemID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, &problem, problemCacheTTL)
	return &problem, nil
}

func (r *problemRepository) GetProblems(ctx context.Context) ([]models.Problem, error) {
	query := `SELECT ` + problemColumns + ` FROM problems ORDER BY created_at DESC`

	var problems []models.Problem
	if err := r.db.SelectContext(ctx, &problems, query); err != nil {
		return nil, fmt.Errorf("failed to get problems: %w", err)
	}
	return problems, nil
}

func (r *problemRepository) GetProblemsSolvedByUser(ctx context.Context, userID string) ([]models.Problem, error) {
	query := `SELECT p.id, p.title, p.description, p.difficulty, p.tags, p.examples,
                  p.constraints, p.testcases, p.code_snippets, p.reference_solutions,
                  p.created_by, p.created_at, p.updated_at
              FROM problems p
              JOIN problem_solved ps ON ps.problem_id = p.id
              WHERE ps.user_id = ?
              ORDER BY ps.created_at DESC`

	var problems []models.Problem
	if err := r.db.SelectContext(ctx, &problems, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get solved problems: %w", err)
	}
	return problems, nil
}

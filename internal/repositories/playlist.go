package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"codeclimb/internal/common"
	"codeclimb/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PlaylistRepository interface {
	CreatePlaylist(ctx context.Context, playlist *models.Playlist) error
	UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error
	DeletePlaylist(ctx context.Context, userID, playlistID string) error
	GetPlaylistByID(ctx context.Context, userID, playlistID string) (*models.Playlist, error)
	GetPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error)
	AddProblems(ctx context.Context, userID, playlistID string, problemIDs []string) (int, error)
	RemoveProblems(ctx context.Context, userID, playlistID string, problemIDs []string) (int, error)
}

type playlistRepository struct {
	db *sqlx.DB
}

func NewPlaylistRepository(db *sqlx.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

func (r *playlistRepository) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	if playlist.ID == "" {
		playlist.ID = uuid.NewString()
	}

	query := `INSERT INTO playlists (id, name, description, user_id) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		playlist.ID, playlist.Name, playlist.Description, playlist.UserID,
	); err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

func (r *playlistRepository) UpdatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	query := `UPDATE playlists SET name = ?, description = ? WHERE id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query,
		playlist.Name, playlist.Description, playlist.ID, playlist.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("playlist %s: %w", playlist.ID, common.ErrNotFound)
	}
	return nil
}

func (r *playlistRepository) DeletePlaylist(ctx context.Context, userID, playlistID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM playlists WHERE id = ? AND user_id = ?`, playlistID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("playlist %s: %w", playlistID, common.ErrNotFound)
	}
	return nil
}

func (r *playlistRepository) GetPlaylistByID(ctx context.Context, userID, playlistID string) (*models.Playlist, error) {
	var playlist models.Playlist
	query := `SELECT id, name, description, user_id, created_at, updated_at
              FROM playlists WHERE id = ? AND user_id = ?`
	if err := r.db.GetContext(ctx, &playlist, query, playlistID, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("playlist %s: %w", playlistID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	problems, err := r.problemsInPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	playlist.Problems = problems

	return &playlist, nil
}

func (r *playlistRepository) GetPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	query := `SELECT id, name, description, user_id, created_at, updated_at
              FROM playlists WHERE user_id = ? ORDER BY created_at DESC`

	var playlists []models.Playlist
	if err := r.db.SelectContext(ctx, &playlists, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get playlists: %w", err)
	}

	for i := range playlists {
		problems, err := r.problemsInPlaylist(ctx, playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].Problems = problems
	}

	return playlists, nil
}

func (r *playlistRepository) AddProblems(ctx context.Context, userID, playlistID string, problemIDs []string) (int, error) {
	if _, err := r.GetPlaylistByID(ctx, userID, playlistID); err != nil {
		return 0, err
	}

	added := 0
	// INSERT IGNORE keeps membership creation idempotent per (playlist, problem).
	query := `INSERT IGNORE INTO problem_in_playlist (id, playlist_id, problem_id) VALUES (?, ?, ?)`
	for _, problemID := range problemIDs {
		result, err := r.db.ExecContext(ctx, query, uuid.NewString(), playlistID, problemID)
		if err != nil {
			return added, fmt.Errorf("failed to add problem %s to playlist: %w", problemID, err)
		}
		if affected, err := result.RowsAffected(); err == nil {
			added += int(affected)
		}
	}
	return added, nil
}

func (r *playlistRepository) RemoveProblems(ctx context.Context, userID, playlistID string, problemIDs []string) (int, error) {
	if len(problemIDs) == 0 {
		return 0, nil
	}

	if _, err := r.GetPlaylistByID(ctx, userID, playlistID); err != nil {
		return 0, err
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(problemIDs)), ",")
	query := fmt.Sprintf(
		`DELETE FROM problem_in_playlist WHERE playlist_id = ? AND problem_id IN (%s)`,
		placeholders,
	)

	args := make([]interface{}, 0, len(problemIDs)+1)
	args = append(args, playlistID)
	for _, id := range problemIDs {
		args = append(args, id)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to remove problems from playlist: %w", err)
	}
	affected, _ := result.RowsAffected()
	return int(affected), nil
}

func (r *playlistRepository) problemsInPlaylist(ctx context.Context, playlistID string) ([]models.Problem, error) {
	query := `SELECT p.id, p.title, p.description, p.difficulty, p.tags, p.examples,
                  p.constraints, p.testcases, p.code_snippets, p.reference_solutions,
                  p.created_by, p.created_at, p.updated_at
              FROM problems p
              JOIN problem_in_playlist pip ON pip.problem_id = p.id
              WHERE pip.playlist_id = ?`

	var problems []models.Problem
	if err := r.db.SelectContext(ctx, &problems, query, playlistID); err != nil {
		return nil, fmt.Errorf("failed to get playlist problems: %w", err)
	}
	return problems, nil
}

package models

import (
	"errors"
	"strings"
	"time"
)

type Playlist struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	UserID      string    `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	Problems []Problem `db:"-" json:"problems,omitempty"`
}

type PlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (r *PlaylistRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("playlist name cannot be empty")
	}
	return nil
}

type PlaylistProblemsRequest struct {
	ProblemIDs []string `json:"problem_ids"`
}

func (r *PlaylistProblemsRequest) Validate() error {
	if len(r.ProblemIDs) == 0 {
		return errors.New("invalid or missing problem IDs")
	}
	for _, id := range r.ProblemIDs {
		if strings.TrimSpace(id) == "" {
			return errors.New("problem IDs cannot be empty")
		}
	}
	return nil
}

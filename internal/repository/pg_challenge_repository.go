package repository

import (
	"context"
	"errors"
	"fmt"

	"challenge-server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var _ ChallengeRepository = (*pgChallengeRepository)(nil)

type pgChallengeRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgChallengeRepository creates a new PostgreSQL-backed ChallengeRepository.
func NewPgChallengeRepository(db DBTX, logger *zap.Logger) ChallengeRepository {
	return &pgChallengeRepository{
		db:     db,
		logger: logger.Named("PgChallengeRepo"),
	}
}

// Create inserts a new challenge. A missing user reference surfaces as ErrInvalidUserRef.
func (r *pgChallengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	query := `INSERT INTO challenges (title, description, difficulty, user_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, challenge.Title, challenge.Description, challenge.Difficulty, challenge.UserID).
		Scan(&challenge.ID, &challenge.CreatedAt, &challenge.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		// 23503 - foreign_key_violation (user_id не существует)
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			r.logger.Warn("Attempted to create challenge with invalid user reference",
				zap.Int64("userID", challenge.UserID))
			return models.ErrInvalidUserRef
		}
		r.logger.Error("Failed to create challenge in postgres", zap.Error(err))
		return fmt.Errorf("failed to create challenge in postgres: %w", err)
	}

	r.logger.Info("Challenge created successfully",
		zap.Int64("challengeID", challenge.ID), zap.Int64("userID", challenge.UserID))
	return nil
}

// List returns one page of challenges.
func (r *pgChallengeRepository) List(ctx context.Context, page, perPage int) (*models.Page[models.Challenge], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	offset := (page - 1) * perPage

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM challenges WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count challenges: %w", err)
	}

	query := `SELECT id, title, description, difficulty, user_id, created_at, updated_at
	          FROM challenges
	          WHERE deleted_at IS NULL
	          ORDER BY id
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, perPage, offset)
	if err != nil {
		r.logger.Error("Failed to list challenges", zap.Error(err))
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	defer rows.Close()

	challenges := make([]models.Challenge, 0, perPage)
	for rows.Next() {
		var ch models.Challenge
		if err := rows.Scan(&ch.ID, &ch.Title, &ch.Description, &ch.Difficulty, &ch.UserID, &ch.CreatedAt, &ch.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan challenge row: %w", err)
		}
		challenges = append(challenges, ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate challenge rows: %w", err)
	}

	return &models.Page[models.Challenge]{Items: challenges, Page: page, PerPage: perPage, TotalCount: total}, nil
}

// GetByID retrieves a challenge by its ID.
func (r *pgChallengeRepository) GetByID(ctx context.Context, id int64) (*models.Challenge, error) {
	query := `SELECT id, title, description, difficulty, user_id, created_at, updated_at
	          FROM challenges WHERE id = $1 AND deleted_at IS NULL`
	ch := &models.Challenge{}
	err := r.db.QueryRow(ctx, query, id).
		Scan(&ch.ID, &ch.Title, &ch.Description, &ch.Difficulty, &ch.UserID, &ch.CreatedAt, &ch.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrChallengeNotFound
		}
		r.logger.Error("Failed to get challenge by id from postgres", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get challenge by id from postgres: %w", err)
	}
	return ch, nil
}

// Update updates an existing challenge.
func (r *pgChallengeRepository) Update(ctx context.Context, challenge *models.Challenge) error {
	query := `UPDATE challenges
	          SET title = $1, description = $2, difficulty = $3, updated_at = now()
	          WHERE id = $4 AND deleted_at IS NULL
	          RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, challenge.Title, challenge.Description, challenge.Difficulty, challenge.ID).
		Scan(&challenge.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrChallengeNotFound
		}
		r.logger.Error("Failed to update challenge in postgres", zap.Error(err), zap.Int64("id", challenge.ID))
		return fmt.Errorf("failed to update challenge in postgres: %w", err)
	}
	return nil
}

// SoftDelete marks a challenge as deleted.
func (r *pgChallengeRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE challenges SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		r.logger.Error("Failed to soft-delete challenge", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to soft-delete challenge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrChallengeNotFound
	}
	return nil
}

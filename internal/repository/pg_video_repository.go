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

var _ VideoRepository = (*pgVideoRepository)(nil)

type pgVideoRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgVideoRepository creates a new PostgreSQL-backed VideoRepository.
func NewPgVideoRepository(db DBTX, logger *zap.Logger) VideoRepository {
	return &pgVideoRepository{
		db:     db,
		logger: logger.Named("PgVideoRepo"),
	}
}

// Create inserts a new video. A missing user reference surfaces as ErrInvalidUserRef.
func (r *pgVideoRepository) Create(ctx context.Context, video *models.Video) error {
	query := `INSERT INTO videos (title, description, url, user_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, video.Title, video.Description, video.URL, video.UserID).
		Scan(&video.ID, &video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			r.logger.Warn("Attempted to create video with invalid user reference",
				zap.Int64("userID", video.UserID))
			return models.ErrInvalidUserRef
		}
		r.logger.Error("Failed to create video in postgres", zap.Error(err))
		return fmt.Errorf("failed to create video in postgres: %w", err)
	}

	r.logger.Info("Video created successfully",
		zap.Int64("videoID", video.ID), zap.Int64("userID", video.UserID))
	return nil
}

// List returns one page of videos.
func (r *pgVideoRepository) List(ctx context.Context, page, perPage int) (*models.Page[models.Video], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	offset := (page - 1) * perPage

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM videos WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}

	query := `SELECT id, title, description, url, user_id, created_at, updated_at
	          FROM videos
	          WHERE deleted_at IS NULL
	          ORDER BY id
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, perPage, offset)
	if err != nil {
		r.logger.Error("Failed to list videos", zap.Error(err))
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := make([]models.Video, 0, perPage)
	for rows.Next() {
		var v models.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.URL, &v.UserID, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan video row: %w", err)
		}
		videos = append(videos, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate video rows: %w", err)
	}

	return &models.Page[models.Video]{Items: videos, Page: page, PerPage: perPage, TotalCount: total}, nil
}

// GetByID retrieves a video by its ID.
func (r *pgVideoRepository) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	query := `SELECT id, title, description, url, user_id, created_at, updated_at
	          FROM videos WHERE id = $1 AND deleted_at IS NULL`
	v := &models.Video{}
	err := r.db.QueryRow(ctx, query, id).
		Scan(&v.ID, &v.Title, &v.Description, &v.URL, &v.UserID, &v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrVideoNotFound
		}
		r.logger.Error("Failed to get video by id from postgres", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get video by id from postgres: %w", err)
	}
	return v, nil
}

// Update updates an existing video.
func (r *pgVideoRepository) Update(ctx context.Context, video *models.Video) error {
	query := `UPDATE videos
	          SET title = $1, description = $2, url = $3, updated_at = now()
	          WHERE id = $4 AND deleted_at IS NULL
	          RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, video.Title, video.Description, video.URL, video.ID).
		Scan(&video.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrVideoNotFound
		}
		r.logger.Error("Failed to update video in postgres", zap.Error(err), zap.Int64("id", video.ID))
		return fmt.Errorf("failed to update video in postgres: %w", err)
	}
	return nil
}

// SoftDelete marks a video as deleted.
func (r *pgVideoRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE videos SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		r.logger.Error("Failed to soft-delete video", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to soft-delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrVideoNotFound
	}
	return nil
}

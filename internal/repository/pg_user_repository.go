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

// Compile-time check to ensure pgUserRepository implements UserRepository
var _ UserRepository = (*pgUserRepository)(nil)

type pgUserRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgUserRepository creates a new PostgreSQL-backed UserRepository.
func NewPgUserRepository(db DBTX, logger *zap.Logger) UserRepository {
	return &pgUserRepository{
		db:     db,
		logger: logger.Named("PgUserRepo"),
	}
}

// Create inserts a new user into the database.
func (r *pgUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, email, image_path)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at, updated_at`
	r.logger.Debug("Executing query", zap.String("query", query), zap.String("email", user.Email))
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.ImagePath).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 - unique_violation (дубликат email)
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Attempted to create user with duplicate email", zap.String("email", user.Email))
			return models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to create user in postgres", zap.Error(err), zap.String("email", user.Email))
		return fmt.Errorf("failed to create user in postgres: %w", err)
	}

	r.logger.Info("User created successfully", zap.Int64("userID", user.ID), zap.String("email", user.Email))
	return nil
}

// List returns one page of users, not including soft-deleted rows.
func (r *pgUserRepository) List(ctx context.Context, page, perPage int) (*models.Page[models.User], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	offset := (page - 1) * perPage

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE deleted_at IS NULL`).Scan(&total); err != nil {
		r.logger.Error("Failed to count users", zap.Error(err))
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT id, name, email, image_path, created_at, updated_at
	          FROM users
	          WHERE deleted_at IS NULL
	          ORDER BY id
	          LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, perPage, offset)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, perPage)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.ImagePath, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return &models.Page[models.User]{Items: users, Page: page, PerPage: perPage, TotalCount: total}, nil
}

// GetByID retrieves a user by their ID.
func (r *pgUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, name, email, image_path, created_at, updated_at
	          FROM users WHERE id = $1 AND deleted_at IS NULL`
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, id).
		Scan(&user.ID, &user.Name, &user.Email, &user.ImagePath, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by ID", zap.Int64("id", id))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by id from postgres", zap.Error(err), zap.Int64("id", id))
		return nil, fmt.Errorf("failed to get user by id from postgres: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by their email. Exact match, no normalization.
func (r *pgUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, image_path, created_at, updated_at
	          FROM users WHERE email = $1 AND deleted_at IS NULL`
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.ImagePath, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("User not found by email", zap.String("email", email))
			return nil, models.ErrUserNotFound
		}
		r.logger.Error("Failed to get user by email from postgres", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email from postgres: %w", err)
	}
	return user, nil
}

// Update updates name, email and image path of an existing user.
func (r *pgUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `UPDATE users
	          SET name = $1, email = $2, image_path = $3, updated_at = now()
	          WHERE id = $4 AND deleted_at IS NULL
	          RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.ImagePath, user.ID).Scan(&user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrUserNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.ErrEmailAlreadyExists
		}
		r.logger.Error("Failed to update user in postgres", zap.Error(err), zap.Int64("id", user.ID))
		return fmt.Errorf("failed to update user in postgres: %w", err)
	}
	return nil
}

// SoftDelete marks a user as deleted without removing the row.
func (r *pgUserRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `UPDATE users SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to soft-delete user", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to soft-delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	r.logger.Info("User soft-deleted", zap.Int64("id", id))
	return nil
}

// GetRandomID returns the ID of a random existing (not deleted) user.
func (r *pgUserRepository) GetRandomID(ctx context.Context) (int64, error) {
	query := `SELECT id FROM users WHERE deleted_at IS NULL ORDER BY random() LIMIT 1`
	var id int64
	err := r.db.QueryRow(ctx, query).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("No users available for random pick")
			return 0, models.ErrUserNotFound
		}
		r.logger.Error("Failed to pick random user id", zap.Error(err))
		return 0, fmt.Errorf("failed to pick random user id: %w", err)
	}
	return id, nil
}

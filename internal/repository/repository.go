package repository

import (
	"context"

	"challenge-server/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Размер страницы по умолчанию при листинге.
const defaultPerPage = 10

// DBTX - минимальный интерфейс над pgxpool.Pool / pgx.Tx,
// позволяющий репозиториям работать как с пулом, так и с транзакцией.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository определяет операции над пользователями.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	List(ctx context.Context, page, perPage int) (*models.Page[models.User], error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id int64) error
	// GetRandomID возвращает ID случайного существующего пользователя.
	// Для пустой таблицы возвращает models.ErrUserNotFound.
	GetRandomID(ctx context.Context) (int64, error)
}

// ChallengeRepository определяет операции над заданиями.
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *models.Challenge) error
	List(ctx context.Context, page, perPage int) (*models.Page[models.Challenge], error)
	GetByID(ctx context.Context, id int64) (*models.Challenge, error)
	Update(ctx context.Context, challenge *models.Challenge) error
	SoftDelete(ctx context.Context, id int64) error
}

// VideoRepository определяет операции над видео.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	List(ctx context.Context, page, perPage int) (*models.Page[models.Video], error)
	GetByID(ctx context.Context, id int64) (*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	SoftDelete(ctx context.Context, id int64) error
}

package handler

// userCreateRequest - тело запроса на создание пользователя.
type userCreateRequest struct {
	Name      string  `json:"name" binding:"required,max=255"`
	Email     string  `json:"email" binding:"required,email,max=255"`
	ImagePath *string `json:"imagePath" binding:"omitempty,max=255"`
}

// userUpdateRequest - тело запроса на обновление пользователя.
// ID передается в теле, как и в остальных update-запросах.
type userUpdateRequest struct {
	ID        int64   `json:"id" binding:"required,min=1"`
	Name      string  `json:"name" binding:"required,max=255"`
	Email     string  `json:"email" binding:"required,email,max=255"`
	ImagePath *string `json:"imagePath" binding:"omitempty,max=255"`
}

// challengeCreateRequest - тело запроса на создание задания.
type challengeCreateRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Difficulty  int    `json:"difficulty" binding:"required,min=1"`
	UserID      int64  `json:"userId" binding:"required,min=1"`
}

// challengeUpdateRequest - тело запроса на обновление задания.
type challengeUpdateRequest struct {
	ID          int64  `json:"id" binding:"required,min=1"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Difficulty  int    `json:"difficulty" binding:"required,min=1"`
}

// videoCreateRequest - тело запроса на создание видео.
type videoCreateRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	URL         string `json:"url" binding:"required,max=255"`
	UserID      int64  `json:"userId" binding:"required,min=1"`
}

// videoUpdateRequest - тело запроса на обновление видео.
type videoUpdateRequest struct {
	ID          int64  `json:"id" binding:"required,min=1"`
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	URL         string `json:"url" binding:"required,max=255"`
}

// deleteRequest - тело запроса на удаление записи.
type deleteRequest struct {
	ID int64 `json:"id" binding:"required,min=1"`
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"challenge-server/internal/config"
	"challenge-server/internal/models"
	"challenge-server/internal/repository"

	"go.uber.org/zap"
)

// AIClient интерфейс для взаимодействия с API генерации текста.
// Пустая строка без ошибки означает "генерация не удалась на стороне API".
type AIClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Промты фиксированы: каждый запрашивает строго один JSON-объект
// с набором полей соответствующей сущности.
const (
	userSeedPrompt = `Generate random data for a new user as a single JSON object with exactly these fields: "name" (string), "email" (string), "imagePath" (string). Respond with only the JSON object, no explanations.`

	challengeSeedPrompt = `Generate random data for a coding challenge as a single JSON object with exactly these fields: "title" (string), "description" (string), "difficulty" (integer, 1 or greater). Respond with only the JSON object, no explanations.`

	videoSeedPrompt = `Generate random data for a video as a single JSON object with exactly these fields: "title" (string), "description" (string), "url" (string). Respond with only the JSON object, no explanations.`
)

// Типизированные полезные нагрузки, полученные из ответа AI.
// Живут только внутри одного цикла сидирования.
type userSeed struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	ImagePath string `json:"imagePath"`
}

type challengeSeed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty"`
}

type videoSeed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// SeederConfig содержит политику работы сидера.
type SeederConfig struct {
	// MaxAttempts ограничивает количество попыток сгенерировать
	// пользователя с уникальным email.
	MaxAttempts int
	// ParsePolicy определяет судьбу цикла при невалидном JSON от AI:
	// config.SeedParsePolicyFail или config.SeedParsePolicySkip.
	ParsePolicy string
}

// SeederService наполняет базу синтетическими записями: пользователь,
// затем задание и видео, привязанные к случайному существующему пользователю.
type SeederService struct {
	ai         AIClient
	users      repository.UserRepository
	challenges repository.ChallengeRepository
	videos     repository.VideoRepository
	cfg        SeederConfig
	logger     *zap.Logger
}

// NewSeederService создает новый SeederService.
func NewSeederService(
	ai AIClient,
	users repository.UserRepository,
	challenges repository.ChallengeRepository,
	videos repository.VideoRepository,
	cfg SeederConfig,
	logger *zap.Logger,
) *SeederService {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.ParsePolicy == "" {
		cfg.ParsePolicy = config.SeedParsePolicyFail
	}
	return &SeederService{
		ai:         ai,
		users:      users,
		challenges: challenges,
		videos:     videos,
		cfg:        cfg,
		logger:     logger.Named("SeederService"),
	}
}

// RunSeedingCycle выполняет один цикл сидирования.
// Если пользователя сгенерировать не удалось (AI не вернул контент),
// цикл завершается успешно, не создав ни одной записи.
func (s *SeederService) RunSeedingCycle(ctx context.Context) error {
	user, err := s.seedUser(ctx)
	if err != nil {
		seederCyclesTotal.WithLabelValues("error").Inc()
		return err
	}
	if user == nil {
		s.logger.Info("No user generated, skipping challenge and video seeding")
		seederCyclesTotal.WithLabelValues("success").Inc()
		return nil
	}

	if err := s.seedChallenge(ctx); err != nil {
		seederCyclesTotal.WithLabelValues("error").Inc()
		return err
	}
	if err := s.seedVideo(ctx); err != nil {
		seederCyclesTotal.WithLabelValues("error").Inc()
		return err
	}

	seederCyclesTotal.WithLabelValues("success").Inc()
	return nil
}

// seedUser генерирует пользователя с уникальным email и сохраняет его.
// Возвращает (nil, nil), если AI не вернул контент: это не ошибка.
func (s *SeederService) seedUser(ctx context.Context) (*models.User, error) {
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		var seed userSeed
		ok, err := s.synthesize(ctx, userSeedPrompt, &seed)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}

		// Уникальность проверяется точным совпадением email, без нормализации
		_, err = s.users.GetByEmail(ctx, seed.Email)
		if err == nil {
			s.logger.Info("Generated email already taken, retrying",
				zap.String("email", seed.Email), zap.Int("attempt", attempt))
			seederEmailCollisions.Inc()
			continue
		}
		if !errors.Is(err, models.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}

		user := &models.User{
			Name:  seed.Name,
			Email: seed.Email,
		}
		if seed.ImagePath != "" {
			user.ImagePath = &seed.ImagePath
		}
		if err := s.users.Create(ctx, user); err != nil {
			// Гонка с параллельной вставкой того же email: пробуем еще раз
			if errors.Is(err, models.ErrEmailAlreadyExists) {
				s.logger.Info("Concurrent insert took the generated email, retrying",
					zap.String("email", seed.Email), zap.Int("attempt", attempt))
				seederEmailCollisions.Inc()
				continue
			}
			return nil, err
		}

		seederRecordsCreated.WithLabelValues("user").Inc()
		return user, nil
	}

	return nil, models.ErrSeedRetryExhausted
}

// seedChallenge генерирует задание и привязывает его к случайному пользователю.
// Отсутствие контента от AI - тихий пропуск шага.
func (s *SeederService) seedChallenge(ctx context.Context) error {
	var seed challengeSeed
	ok, err := s.synthesize(ctx, challengeSeedPrompt, &seed)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug("No challenge generated, skipping")
		return nil
	}

	userID, err := s.users.GetRandomID(ctx)
	if err != nil {
		return fmt.Errorf("failed to pick user for challenge: %w", err)
	}

	challenge := &models.Challenge{
		Title:       seed.Title,
		Description: seed.Description,
		Difficulty:  seed.Difficulty,
		UserID:      userID,
	}
	if err := s.challenges.Create(ctx, challenge); err != nil {
		return err
	}

	seederRecordsCreated.WithLabelValues("challenge").Inc()
	return nil
}

// seedVideo генерирует видео и привязывает его к случайному пользователю.
func (s *SeederService) seedVideo(ctx context.Context) error {
	var seed videoSeed
	ok, err := s.synthesize(ctx, videoSeedPrompt, &seed)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug("No video generated, skipping")
		return nil
	}

	userID, err := s.users.GetRandomID(ctx)
	if err != nil {
		return fmt.Errorf("failed to pick user for video: %w", err)
	}

	video := &models.Video{
		Title:       seed.Title,
		Description: seed.Description,
		URL:         seed.URL,
		UserID:      userID,
	}
	if err := s.videos.Create(ctx, video); err != nil {
		return err
	}

	seederRecordsCreated.WithLabelValues("video").Inc()
	return nil
}

// synthesize запрашивает у AI контент по промту и декодирует его в out.
// Возвращает false, если контента нет (и это не ошибка) либо если JSON
// невалиден, а политика - skip.
func (s *SeederService) synthesize(ctx context.Context, prompt string, out any) (bool, error) {
	completion, err := s.ai.Generate(ctx, prompt)
	if err != nil {
		return false, fmt.Errorf("generation failed: %w", err)
	}
	if strings.TrimSpace(completion) == "" {
		seederEmptyCompletions.Inc()
		return false, nil
	}

	raw := extractJSONObject(completion)
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		if s.cfg.ParsePolicy == config.SeedParsePolicySkip {
			s.logger.Warn("Discarding malformed completion",
				zap.Error(err), zap.String("completion", completion))
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", models.ErrMalformedCompletion, err)
	}
	return true, nil
}

// extractJSONObject вырезает JSON-объект из текста ответа: модели часто
// оборачивают его в markdown-ограждения или добавляют пояснения вокруг.
func extractJSONObject(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return strings.TrimSpace(text)
}

// Package services содержит бизнес-логику работы с журналом атак:
// прием событий, выдачу списка с кешированием, триаж статусов,
// очистку журнала и блокировку IP-адресов.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/sl"
	"github.com/magabrotheeeer/intrusion-monitor/internal/models"
)

// Ключ кеша для полного списка событий.
const logsCacheKey = "attacklogs:all"

// Ошибки бизнес-уровня журнала атак.
var (
	// ErrIPBanned возвращается при попытке приема события с заблокированного адреса.
	ErrIPBanned = errors.New("source ip is banned")
	// ErrInvalidStatus возвращается при неизвестном статусе триажа.
	ErrInvalidStatus = errors.New("invalid status")
)

// EventRepository определяет методы для работы с журналом атак в хранилище.
type EventRepository interface {
	// CreateLog добавляет событие и возвращает созданную запись.
	CreateLog(ctx context.Context, entry models.AttackLog) (*models.AttackLog, error)
	// ListLogs возвращает все события, новые первыми.
	ListLogs(ctx context.Context) ([]*models.AttackLog, error)
	// UpdateLogStatus обновляет статус события по ID.
	UpdateLogStatus(ctx context.Context, id int, status string) (*models.AttackLog, error)
	// PurgeLogs очищает журнал.
	PurgeLogs(ctx context.Context) error
	// BanIP блокирует IP-адрес.
	BanIP(ctx context.Context, ipAddress, bannedBy string) error
	// IsIPBanned сообщает, заблокирован ли адрес.
	IsIPBanned(ctx context.Context, ipAddress string) (bool, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// AlertPublisher описывает публикацию оповещений о критичных событиях.
type AlertPublisher interface {
	PublishAlert(entry *models.AttackLog) error
}

// EventService реализует бизнес-логику журнала атак, включая кеширование
// и оповещения о критичных событиях.
type EventService struct {
	repo   EventRepository
	cache  Cache
	alerts AlertPublisher
	log    *slog.Logger
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(repo EventRepository, cache Cache, alerts AlertPublisher, log *slog.Logger) *EventService {
	return &EventService{
		repo:   repo,
		cache:  cache,
		alerts: alerts,
		log:    log,
	}
}

// Ingest принимает событие вторжения.
//
// События с заблокированных адресов отклоняются до записи в журнал.
// Для событий критичного уровня публикуется оповещение; отказ брокера
// не считается ошибкой приема.
func (s *EventService) Ingest(ctx context.Context, entry models.AttackLog) (*models.AttackLog, error) {
	const op = "services.event.Ingest"

	banned, err := s.repo.IsIPBanned(ctx, entry.SourceIP)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if banned {
		return nil, ErrIPBanned
	}

	created, err := s.repo.CreateLog(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("attack log created", slog.Int("id", created.ID),
		slog.String("source_ip", created.SourceIP), slog.String("severity", created.Severity))

	if err := s.cache.Invalidate(logsCacheKey); err != nil {
		s.log.Warn("failed to invalidate logs cache", sl.Err(err))
	}

	if created.Severity == models.SeverityCritical && s.alerts != nil {
		if err := s.alerts.PublishAlert(created); err != nil {
			s.log.Warn("failed to publish critical alert", sl.Err(err))
		}
	}
	return created, nil
}

// ListLogs возвращает список событий, используя кеш или репозиторий.
func (s *EventService) ListLogs(ctx context.Context) ([]*models.AttackLog, error) {
	var result []*models.AttackLog
	found, err := s.cache.Get(logsCacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read logs cache", sl.Err(err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListLogs(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(logsCacheKey, result, time.Minute); err != nil {
		s.log.Warn("failed to cache logs", sl.Err(err))
	}
	return result, nil
}

// UpdateStatus переводит событие в один из статусов триажа.
func (s *EventService) UpdateStatus(ctx context.Context, id int, status string) (*models.AttackLog, error) {
	switch status {
	case models.StatusOpen, models.StatusInProgress, models.StatusResolved:
	default:
		return nil, ErrInvalidStatus
	}

	entry, err := s.repo.UpdateLogStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(logsCacheKey); err != nil {
		s.log.Warn("failed to invalidate logs cache", sl.Err(err))
	}
	return entry, nil
}

// Purge полностью очищает журнал атак.
func (s *EventService) Purge(ctx context.Context) error {
	if err := s.repo.PurgeLogs(ctx); err != nil {
		return err
	}
	if err := s.cache.Invalidate(logsCacheKey); err != nil {
		s.log.Warn("failed to invalidate logs cache", sl.Err(err))
	}
	s.log.Info("attack logs purged")
	return nil
}

// Ban блокирует IP-адрес от имени администратора.
func (s *EventService) Ban(ctx context.Context, ipAddress, bannedBy string) error {
	if err := s.repo.BanIP(ctx, ipAddress, bannedBy); err != nil {
		return err
	}
	s.log.Info("ip banned", slog.String("ip_address", ipAddress), slog.String("banned_by", bannedBy))
	return nil
}

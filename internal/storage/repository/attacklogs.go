package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/intrusion-monitor/internal/models"
)

// CreateLog добавляет новое событие в журнал атак и возвращает созданную запись.
func (s *Storage) CreateLog(ctx context.Context, entry models.AttackLog) (*models.AttackLog, error) {
	const op = "storage.CreateLog"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO attack_logs (source_ip, attack_type, severity)
			  VALUES ($1, $2, $3)
			  RETURNING id, status, created_at;`
	if err := s.DB.QueryRowContext(ctx, query,
		entry.SourceIP, entry.AttackType, entry.Severity).
		Scan(&entry.ID, &entry.Status, &entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &entry, nil
}

// ListLogs возвращает все события журнала, новые первыми.
func (s *Storage) ListLogs(ctx context.Context) ([]*models.AttackLog, error) {
	const op = "storage.ListLogs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, source_ip, attack_type, severity, status, created_at
			  FROM attack_logs
			  ORDER BY id DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.AttackLog
	for rows.Next() {
		var entry models.AttackLog
		if err = rows.Scan(&entry.ID, &entry.SourceIP, &entry.AttackType,
			&entry.Severity, &entry.Status, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLogStatus обновляет статус события и возвращает обновленную запись.
func (s *Storage) UpdateLogStatus(ctx context.Context, id int, status string) (*models.AttackLog, error) {
	const op = "storage.UpdateLogStatus"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE attack_logs
			  SET status = $1
			  WHERE id = $2
			  RETURNING id, source_ip, attack_type, severity, status, created_at;`
	entry := &models.AttackLog{}
	if err := s.DB.QueryRowContext(ctx, query, status, id).
		Scan(&entry.ID, &entry.SourceIP, &entry.AttackType,
			&entry.Severity, &entry.Status, &entry.CreatedAt); err != nil {
		if isNoRows(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrLogNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return entry, nil
}

// PurgeLogs полностью очищает журнал атак и сбрасывает счетчик идентификаторов.
func (s *Storage) PurgeLogs(ctx context.Context) error {
	const op = "storage.PurgeLogs"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := s.DB.ExecContext(ctx, `TRUNCATE TABLE attack_logs RESTART IDENTITY`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CountLogs возвращает количество записей в журнале атак.
func (s *Storage) CountLogs(ctx context.Context) (int, error) {
	const op = "storage.CountLogs"
	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM attack_logs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

package repository

import (
	"context"
	"fmt"
)

// BanIP добавляет IP-адрес в список заблокированных.
//
// Повторная блокировка того же адреса не является ошибкой: вставка
// выполняется с ON CONFLICT DO NOTHING.
func (s *Storage) BanIP(ctx context.Context, ipAddress, bannedBy string) error {
	const op = "storage.BanIP"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO banned_ips (ip_address, banned_by)
			  VALUES ($1, $2)
			  ON CONFLICT (ip_address) DO NOTHING`
	if _, err := s.DB.ExecContext(ctx, query, ipAddress, bannedBy); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsIPBanned сообщает, находится ли IP-адрес в списке заблокированных.
func (s *Storage) IsIPBanned(ctx context.Context, ipAddress string) (bool, error) {
	const op = "storage.IsIPBanned"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM banned_ips WHERE ip_address = $1)`
	var banned bool
	if err := s.DB.QueryRowContext(ctx, query, ipAddress).Scan(&banned); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return banned, nil
}

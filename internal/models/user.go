// Package models содержит доменные модели системы мониторинга вторжений:
// учетные записи аналитиков, журнал атак и список заблокированных IP-адресов.
// Структуры используются в бизнес-логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей системы.
const (
	RoleAnalyst = "analyst"
	RoleAdmin   = "admin"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    `json:"id"`        // Уникальный идентификатор пользователя
	FullName     string    `json:"name"`      // Отображаемое имя
	Email        string    `json:"email"`     // Электронная почта, уникальный ключ входа
	PasswordHash string    `json:"-"`         // Хэш пароля, никогда не отдается клиенту
	Role         string    `json:"role"`      // Роль пользователя, analyst или admin
	CreatedAt    time.Time `json:"createdAt"` // Время создания учетной записи
}

package models

import "time"

// Статусы разбора события в журнале атак.
const (
	StatusOpen       = "Open"
	StatusInProgress = "In Progress"
	StatusResolved   = "Resolved"
)

// Уровни критичности события.
const (
	SeverityLow      = "Low"
	SeverityMedium   = "Medium"
	SeverityHigh     = "High"
	SeverityCritical = "Critical"
)

// AttackLog представляет одно событие вторжения в журнале.
type AttackLog struct {
	ID         int       `json:"log_id"`      // Идентификатор записи
	SourceIP   string    `json:"source_ip"`   // IP-адрес источника атаки
	AttackType string    `json:"attack_type"` // Тип атаки
	Severity   string    `json:"severity"`    // Критичность: Low, Medium, High, Critical
	Status     string    `json:"status"`      // Статус разбора события
	CreatedAt  time.Time `json:"created_at"`  // Время регистрации события
}

// BannedIP представляет заблокированный IP-адрес.
type BannedIP struct {
	IPAddress string    `json:"ip_address"` // Заблокированный адрес
	BannedAt  time.Time `json:"banned_at"`  // Время блокировки
	BannedBy  string    `json:"banned_by"`  // Email администратора, выполнившего блокировку
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его uid
func (f *TestDataFactory) CreateUser(t *testing.T, fullName, email, passwordHash, role string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4) RETURNING uid`,
		fullName, email, passwordHash, role).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateAttackLog создает тестовое событие журнала атак и возвращает его id
func (f *TestDataFactory) CreateAttackLog(t *testing.T, sourceIP, attackType, severity, status string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO attack_logs (source_ip, attack_type, severity, status)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		sourceIP, attackType, severity, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateBannedIP добавляет тестовую запись в список заблокированных адресов
func (f *TestDataFactory) CreateBannedIP(t *testing.T, ipAddress, bannedBy string) {
	_, err := f.storage.DB.Exec(`INSERT INTO banned_ips (ip_address, banned_by)
		VALUES ($1, $2)`,
		ipAddress, bannedBy)
	require.NoError(t, err)
}

// TestVerification содержит общие функции для проверки результатов тестов
type TestVerification struct {
	storage *Storage
}

// NewTestVerification создает новый объект для проверки результатов
func NewTestVerification(storage *Storage) *TestVerification {
	return &TestVerification{storage: storage}
}

// VerifyUserExists проверяет существование пользователя в БД
func (v *TestVerification) VerifyUserExists(t *testing.T, email string) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE email = $1", email).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

// VerifyLogStatus проверяет статус события журнала
func (v *TestVerification) VerifyLogStatus(t *testing.T, id int, expectedStatus string) {
	var status string
	err := v.storage.DB.QueryRow("SELECT status FROM attack_logs WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	require.Equal(t, expectedStatus, status)
}

// VerifyLogsEmpty проверяет, что журнал атак пуст
func (v *TestVerification) VerifyLogsEmpty(t *testing.T) {
	var count int
	err := v.storage.DB.QueryRow("SELECT COUNT(*) FROM attack_logs").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(`
        CREATE EXTENSION IF NOT EXISTS "pgcrypto";

        CREATE TABLE users (
            uid UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            full_name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'analyst',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE attack_logs (
            id SERIAL PRIMARY KEY,
            source_ip TEXT NOT NULL,
            attack_type TEXT NOT NULL,
            severity TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'Open',
            created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );

        CREATE TABLE banned_ips (
            ip_address VARCHAR(45) PRIMARY KEY,
            banned_at TIMESTAMPTZ NOT NULL DEFAULT now(),
            banned_by TEXT
        );
    `)
	require.NoError(t, err, "failed to create tables")

	cleanup := func() {
		if storage != nil && storage.DB != nil {
			_ = storage.DB.Close()
		}
		if pgContainer != nil {
			_ = pgContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}

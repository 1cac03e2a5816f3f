// Генератор синтетических событий вторжения для нагрузочной проверки панели.
// Раз в интервал отправляет случайное событие на эндпоинт приема.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/magabrotheeeer/intrusion-monitor/internal/lib/sl"
	"github.com/magabrotheeeer/intrusion-monitor/internal/models"
)

var attackTypes = []string{
	"SQL Injection",
	"XSS Payload",
	"DDoS Volumetric",
	"Port Scan",
	"Brute Force",
}

var severities = []string{
	models.SeverityLow,
	models.SeverityMedium,
	models.SeverityHigh,
	models.SeverityCritical,
}

type event struct {
	SourceIP   string `json:"source_ip"`
	AttackType string `json:"attack_type"`
	Severity   string `json:"severity"`
}

func randomEvent() event {
	return event{
		SourceIP:   fmt.Sprintf("192.168.%d.%d", rand.IntN(255), rand.IntN(255)),
		AttackType: attackTypes[rand.IntN(len(attackTypes))],
		Severity:   severities[rand.IntN(len(severities))],
	}
}

func fire(ctx context.Context, client *http.Client, target string, logger *slog.Logger) {
	payload, err := json.Marshal(randomEvent())
	if err != nil {
		logger.Error("failed to marshal event", sl.Err(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		logger.Error("failed to build request", sl.Err(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		// Сервер может быть не запущен, это не повод останавливать генератор.
		logger.Debug("target unreachable", sl.Err(err))
		return
	}
	_ = resp.Body.Close()
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	target := os.Getenv("GENERATOR_TARGET")
	if target == "" {
		target = "http://localhost:8080/api/v1/ingest"
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: 5 * time.Second}
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	logger.Info("attack generator started", slog.String("target", target))
	for {
		select {
		case <-ctx.Done():
			logger.Info("attack generator stopped")
			return
		case <-ticker.C:
			fire(ctx, client, target, logger)
		}
	}
}

package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/intrusion-monitor/internal/models"
	eventservice "github.com/magabrotheeeer/intrusion-monitor/internal/services/event"
)

// Мок сервиса приема событий
type EventServiceMock struct {
	mock.Mock
}

func (m *EventServiceMock) Ingest(ctx context.Context, entry models.AttackLog) (*models.AttackLog, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttackLog), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestIngestHandler_ServeHTTP(t *testing.T) {
	created := &models.AttackLog{
		ID:         1,
		SourceIP:   "192.168.1.10",
		AttackType: "Port Scan",
		Severity:   models.SeverityMedium,
		Status:     models.StatusOpen,
	}

	tests := []struct {
		name           string
		requestBody    any
		mockEntry      *models.AttackLog
		mockErr        error
		wantMockCall   bool
		wantStatusCode int
		wantSuccess    bool
		wantMessage    string
	}{
		{
			name: "valid event",
			requestBody: Request{
				SourceIP:   "192.168.1.10",
				AttackType: "Port Scan",
				Severity:   models.SeverityMedium,
			},
			mockEntry:      created,
			wantMockCall:   true,
			wantStatusCode: http.StatusOK,
			wantSuccess:    true,
		},
		{
			name:           "invalid json body",
			requestBody:    "{broken",
			wantStatusCode: http.StatusBadRequest,
			wantSuccess:    false,
			wantMessage:    "invalid request body",
		},
		{
			name: "validation error - not an ip",
			requestBody: Request{
				SourceIP:   "not-an-ip",
				AttackType: "Port Scan",
				Severity:   models.SeverityMedium,
			},
			wantStatusCode: http.StatusBadRequest,
			wantSuccess:    false,
			wantMessage:    "field SourceIP must be a valid ip address",
		},
		{
			name: "banned source ip",
			requestBody: Request{
				SourceIP:   "10.0.0.66",
				AttackType: "Brute Force",
				Severity:   models.SeverityCritical,
			},
			mockErr:        eventservice.ErrIPBanned,
			wantMockCall:   true,
			wantStatusCode: http.StatusForbidden,
			wantSuccess:    false,
			wantMessage:    "connection refused by security policy",
		},
		{
			name: "store error",
			requestBody: Request{
				SourceIP:   "192.168.1.10",
				AttackType: "Port Scan",
				Severity:   models.SeverityMedium,
			},
			mockErr:        errors.New("db error"),
			wantMockCall:   true,
			wantStatusCode: http.StatusInternalServerError,
			wantSuccess:    false,
			wantMessage:    "server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(EventServiceMock)
			if tt.wantMockCall {
				serviceMock.On("Ingest", mock.Anything, mock.Anything).
					Return(tt.mockEntry, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/ingest", bytes.NewReader(bodyBytes))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var resp struct {
				Success bool            `json:"success"`
				Message string          `json:"message"`
				Data    json.RawMessage `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantSuccess, resp.Success)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, resp.Message)
			}

			if tt.wantSuccess {
				var entry models.AttackLog
				require.NoError(t, json.Unmarshal(resp.Data, &entry))
				assert.Equal(t, created.ID, entry.ID)
				assert.Equal(t, models.StatusOpen, entry.Status)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}

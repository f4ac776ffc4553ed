package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"P2H-backend/internal/p2h"
	"P2H-backend/internal/vehicles"
)

var wita = time.FixedZone("WITA", 8*60*60)

func testService(baseURL string) *Service {
	return &Service{
		client:  &http.Client{Timeout: 2 * time.Second},
		baseURL: baseURL + "/bot-test-token",
		chatID:  "-100123",
		loc:     wita,
		enabled: true,
	}
}

func TestSendMessage(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot-test-token/sendMessage", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := testService(srv.URL)
	err := svc.sendMessage(context.Background(), "<b>halo</b>")
	require.NoError(t, err)

	assert.Equal(t, "-100123", got["chat_id"])
	assert.Equal(t, "<b>halo</b>", got["text"])
	assert.Equal(t, "HTML", got["parse_mode"])
	assert.Equal(t, true, got["disable_web_page_preview"])
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer srv.Close()

	err := testService(srv.URL).sendMessage(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Contains(t, err.Error(), "chat not found")
}

func sampleVehicle() vehicles.Vehicle {
	brand := "Toyota"
	return vehicles.Vehicle{
		VehicleID:   7,
		HullNumber:  "LV-042",
		PlateNumber: "KT 1234 AB",
		VehicleType: "Light Vehicle",
		Brand:       &brand,
	}
}

func TestFormatP2HMessage(t *testing.T) {
	r := p2h.Report{
		ReportID:       11,
		VehicleID:      7,
		ShiftNumber:    2,
		OverallStatus:  p2h.StatusAbnormal,
		SubmissionDate: "2025-03-10",
		SubmissionTime: time.Date(2025, 3, 10, 7, 30, 0, 0, time.UTC), // 15:30 WITA
	}

	msg := formatP2HMessage(sampleVehicle(), r, wita)

	assert.Contains(t, msg, "ABNORMAL (STOP OPERASI)")
	assert.Contains(t, msg, "<code>LV-042</code>")
	assert.Contains(t, msg, "Toyota / KT 1234 AB")
	assert.Contains(t, msg, "10 Maret 2025")
	assert.Contains(t, msg, "15:30 WITA")
	assert.Contains(t, msg, "<b>Shift:</b> 2")

	r.OverallStatus = p2h.StatusWarning
	msg = formatP2HMessage(sampleVehicle(), r, wita)
	assert.Contains(t, msg, "WARNING (PERLU PERBAIKAN)")
}

func TestFormatExpiryMessage(t *testing.T) {
	doc := vehicles.ExpiringDocument{
		Vehicle:    sampleVehicle(),
		DocType:    "STNK",
		ExpiryDate: "2025-04-01",
		DaysLeft:   22,
	}
	msg := formatExpiryMessage(doc)
	assert.Contains(t, msg, "EXPIRY ALERT: STNK")
	assert.Contains(t, msg, "PERINGATAN")
	assert.Contains(t, msg, "01 April 2025")
	assert.Contains(t, msg, "22 Hari Lagi")

	doc.DaysLeft = 5
	assert.Contains(t, formatExpiryMessage(doc), "SANGAT SEGERA")

	doc.DaysLeft = -1
	assert.Contains(t, formatExpiryMessage(doc), "SUDAH EXPIRED (STOP OPERASI)")
}

func TestFormatDateID(t *testing.T) {
	assert.Equal(t, "01 Januari 2025", formatDateID("2025-01-01"))
	assert.Equal(t, "17 Agustus 2024", formatDateID("2024-08-17"))
	// unparseable input passes through untouched
	assert.Equal(t, "bukan-tanggal", formatDateID("bukan-tanggal"))
}

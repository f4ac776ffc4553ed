package telegram

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"P2H-backend/internal/p2h"
	platformdb "P2H-backend/internal/platform/db"
	"P2H-backend/internal/vehicles"
)

const (
	apiBase    = "https://api.telegram.org"
	maxRetries = 3
)

// Service sends P2H and expiry alerts to a Telegram group chat and records
// every attempt in the audit log. Satisfies p2h.Notifier.
type Service struct {
	store   *Store
	client  *http.Client
	baseURL string // <apiBase>/bot<token>
	chatID  string
	loc     *time.Location
	enabled bool
}

// NewService builds the notifier. With an empty bot token the service stays
// constructed but disabled: alerts are logged to the audit table only, so
// dev environments run without a bot.
func NewService(db *sql.DB, cfg platformdb.TelegramConfig, loc *time.Location) *Service {
	enabled := cfg.BotToken != "" && cfg.ChatID != ""
	if !enabled {
		log.Printf("[WARN] telegram bot_token/chat_id not configured, alerts will be logged only")
	}
	return &Service{
		store:   NewStore(db),
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: fmt.Sprintf("%s/bot%s", apiBase, cfg.BotToken),
		chatID:  cfg.ChatID,
		loc:     loc,
		enabled: enabled,
	}
}

// sendMessage posts one HTML message to the Bot API.
func (s *Service) sendMessage(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]any{
		"chat_id":                  s.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/sendMessage", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram API returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}

// deliver inserts the audit row, attempts the send, and records the outcome.
func (s *Service) deliver(ctx context.Context, n *Notification) error {
	id, err := s.store.Insert(ctx, n)
	if err != nil {
		return err
	}

	if !s.enabled {
		if err := s.store.MarkFailed(ctx, id, "telegram not configured"); err != nil {
			return err
		}
		return nil
	}

	if err := s.sendMessage(ctx, n.Message); err != nil {
		log.Printf("[WARN] telegram send failed (notification %d): %v", id, err)
		return s.store.MarkFailed(ctx, id, err.Error())
	}
	return s.store.MarkSent(ctx, id)
}

// NotifyInspection implements p2h.Notifier: alert on a non-normal report.
func (s *Service) NotifyInspection(ctx context.Context, v vehicles.Vehicle, r p2h.Report) error {
	if r.OverallStatus == p2h.StatusNormal {
		return nil
	}
	typ := TypeP2HWarning
	if r.OverallStatus == p2h.StatusAbnormal {
		typ = TypeP2HAbnormal
	}

	return s.deliver(ctx, &Notification{
		Type:      typ,
		VehicleID: &v.VehicleID,
		ReportID:  &r.ReportID,
		Message:   formatP2HMessage(v, r, s.loc),
	})
}

// NotifyExpiry alerts on an expiring STNK/KIR document, at most once per
// vehicle per document type per day.
func (s *Service) NotifyExpiry(ctx context.Context, doc vehicles.ExpiringDocument, since time.Time) error {
	typ := TypeSTNKExpiry
	if doc.DocType == "KIR" {
		typ = TypeKIRExpiry
	}

	exists, err := s.store.ExistsSince(ctx, doc.Vehicle.VehicleID, typ, since)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return s.deliver(ctx, &Notification{
		Type:      typ,
		VehicleID: &doc.Vehicle.VehicleID,
		Message:   formatExpiryMessage(doc),
	})
}

// RetryUnsent re-attempts delivery of queued notifications. Returns how many
// went out. Attempts are bounded per row by maxRetries.
func (s *Service) RetryUnsent(ctx context.Context, limit int) (int, error) {
	if !s.enabled {
		return 0, nil
	}
	pending, err := s.store.ListUnsent(ctx, maxRetries, limit)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, n := range pending {
		if err := s.sendMessage(ctx, n.Message); err != nil {
			if err := s.store.MarkFailed(ctx, n.NotificationID, err.Error()); err != nil {
				return sent, err
			}
			continue
		}
		if err := s.store.MarkSent(ctx, n.NotificationID); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

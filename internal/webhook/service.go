package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Service delivers marketplace notifications to an external observer URL.
// Delivery is best effort and happens strictly after the engine has
// committed, so a slow or failing observer can never undo an exchange.
type Service interface {
	Notify(eventType string, payload interface{}) error
	NotifierFor(eventType string) func(el interface{})
}

type service struct {
	url    string
	client *retryablehttp.Client
}

func NewService(url string, client *retryablehttp.Client) Service {
	return service{url, client}
}

func (s service) Notify(eventType string, payload interface{}) error {
	if s.url == "" {
		return errors.New("webhook url not configured")
	}

	body, err := json.Marshal(map[string]interface{}{
		"event":   eventType,
		"payload": payload,
	})
	if err != nil {
		return err
	}

	resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %s", resp.Status)
	}

	zap.L().With(
		zap.String("event", eventType),
		zap.String("url", s.url),
	).Debug("Webhook: Notification delivered")

	return nil
}

// NotifierFor adapts Notify into an event listener callback.
func (s service) NotifierFor(eventType string) func(el interface{}) {
	return func(el interface{}) {
		if s.url == "" {
			return
		}
		if err := s.Notify(eventType, el); err != nil {
			zap.L().With(zap.Error(err), zap.String("event", eventType)).Warn("Webhook: Notification failed")
		}
	}
}

package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quickqueue/config"
	apperrors "quickqueue/pkg/app_errors"
)

// SessionData 外部認證服務回傳的使用者資料
type SessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// Provider 用 X-Session-ID 跟外部認證服務換使用者資料
type Provider interface {
	FetchSessionData(ctx context.Context, sessionID string) (*SessionData, error)
}

type HTTPProvider struct {
	url    string
	client *http.Client
}

func NewHTTPProvider(cfg *config.AuthConfig) Provider {
	return &HTTPProvider{
		url: cfg.ProviderURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *HTTPProvider) FetchSessionData(ctx context.Context, sessionID string) (*SessionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ErrUnauthorized
	}

	var data SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("invalid auth provider response: %w", err)
	}

	return &data, nil
}

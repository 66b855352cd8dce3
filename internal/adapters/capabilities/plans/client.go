package plans

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/platform/httpclient"
)

var (
	ErrPlansNotConfigured = errors.New("plans client not configured")
	ErrPlansUnauthorized  = errors.New("plans unauthorized")
	ErrPlansUpstream      = errors.New("plans upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	// Header de la API key; vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	apiKey       string
	apiKeyHeader string
	http         *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		http:         hc,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// PlanResponse refleja el contrato del servicio de planes.
// MaxPets <= 0 significa "sin límite" (plan premium).
type PlanResponse struct {
	Plan    string `json:"plan"` // "free" | "premium"
	MaxPets int    `json:"max_pets"`
}

// GetPlan trae el plan vigente de un usuario.
func (c *Client) GetPlan(ctx context.Context, userID string) (PlanResponse, error) {
	if !c.IsConfigured() {
		return PlanResponse{}, ErrPlansNotConfigured
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return PlanResponse{}, errors.New("userID required")
	}

	var out PlanResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/v1/plans?user_id="+userID,
		map[string]string{c.apiKeyHeader: c.apiKey},
		nil,
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return PlanResponse{}, ErrPlansUnauthorized
			}
			return PlanResponse{}, fmt.Errorf("%w: status=%d", ErrPlansUpstream, httpErr.StatusCode)
		}
		return PlanResponse{}, fmt.Errorf("%w: %v", ErrPlansUpstream, err)
	}

	return out, nil
}

package auth_client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

var ErrNoServers = errors.New("no auth servers configured")

type RRBalancer struct {
	mu      sync.Mutex
	servers []string
	cur     int
}

func (b *RRBalancer) NextServer() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.servers) == 0 {
		return ""
	}

	s := b.servers[b.cur%len(b.servers)]
	b.cur++
	return s
}

type AuthClient interface {
	ValidateToken(token string) (bool, error)
	Authenticate(code string) (string, error)
}

// HTTPAuthClient talks to standalone auth instances (cmd/auth) round-robin.
type HTTPAuthClient struct {
	balancer   *RRBalancer
	httpClient *http.Client
	logger     *slog.Logger
}

// New accepts a ';'-separated list of base URLs, e.g. "http://auth-1:8080;http://auth-2:8080".
func New(serversList string, timeout time.Duration) *HTTPAuthClient {
	servers := make([]string, 0)
	if serversList != "" {
		for _, s := range strings.Split(serversList, ";") {
			if trimmed := strings.TrimRight(strings.TrimSpace(s), "/"); trimmed != "" {
				servers = append(servers, trimmed)
			}
		}
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &HTTPAuthClient{
		balancer: &RRBalancer{
			servers: servers},
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: slog.Default(),
	}
}

type ValidateRequest struct {
	Token string `json:"token"`
}

type ValidateResponse struct {
	Valid bool `json:"valid"`
}

func (c *HTTPAuthClient) ValidateToken(token string) (bool, error) {
	server := c.balancer.NextServer()
	if server == "" {
		return false, ErrNoServers
	}

	jsonBody, err := json.Marshal(ValidateRequest{Token: token})
	if err != nil {
		return false, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.httpClient.Post(
		server+"/api/v1/auth/validate",
		"application/json",
		bytes.NewBuffer(jsonBody),
	)
	if err != nil {
		return false, fmt.Errorf("failed to validate token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("auth service returned status: %d", resp.StatusCode)
	}

	var validateResp ValidateResponse
	if err := json.NewDecoder(resp.Body).Decode(&validateResp); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}

	return validateResp.Valid, nil
}

func (c *HTTPAuthClient) Authenticate(code string) (string, error) {
	server := c.balancer.NextServer()
	if server == "" {
		return "", ErrNoServers
	}

	jsonBody, err := json.Marshal(map[string]string{"code": code})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.httpClient.Post(
		server+"/api/v1/auth",
		"application/json",
		bytes.NewBuffer(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("failed to authenticate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		c.logger.Warn("auth rejected", slog.String("server", server), slog.Int("status", resp.StatusCode))
		return "", fmt.Errorf("auth failed with status: %d", resp.StatusCode)
	}

	token := resp.Header.Get("X-admin-token")
	if token == "" {
		return "", fmt.Errorf("no token in response")
	}

	return token, nil
}

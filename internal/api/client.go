package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/osse101/TrainerBot_Go/internal/domain"
	"github.com/osse101/TrainerBot_Go/internal/logger"
	"github.com/osse101/TrainerBot_Go/internal/validation"
)

// Client handles communication with the trainer game REST API
type Client struct {
	BaseURL    string
	HTTP       *http.Client
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration

	schemas validation.SchemaValidator
}

// NewClient creates a new API client
func NewClient(baseURL, apiKey string, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: timeout,
		},
		APIKey:     apiKey,
		MaxRetries: maxRetries,
		RetryDelay: DefaultRetryDelay,
		schemas:    validation.NewSchemaValidator(),
	}
}

// requestOptions carries per-call headers
type requestOptions struct {
	discordID      string
	idempotencyKey string
}

// doRequest performs an HTTP request, retrying transport errors and 5xx
// responses with exponential backoff and jitter. Other statuses are
// returned to the caller.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, opts requestOptions) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + path
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(rand.Int63n(int64(MaxJitter)))
			delay := c.RetryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			log.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.APIKey != "" {
			req.Header.Set(HeaderAPIKey, c.APIKey)
		}
		if opts.discordID != "" {
			req.Header.Set(HeaderDiscordUserID, opts.discordID)
		}
		if opts.idempotencyKey != "" {
			req.Header.Set(HeaderIdempotencyKey, opts.idempotencyKey)
		}
		if id := logger.GetRequestID(ctx); id != "" {
			req.Header.Set(HeaderRequestID, id)
		}

		resp, err := c.HTTP.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			log.Warn("API request failed", "error", err, "attempt", attempt, "path", path)
			continue
		}

		if resp.StatusCode < 500 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		log.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt, "path", path)
	}

	return nil, fmt.Errorf("%w: %w", ErrMaxRetries, lastErr)
}

// errorBody is the backend's error envelope; older endpoints use message
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// readError extracts the backend error text from a non-2xx response
func readError(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxErrorBodyBytes))
	if err != nil || len(data) == 0 {
		return http.StatusText(resp.StatusCode)
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return http.StatusText(resp.StatusCode)
}

func statusError(resp *http.Response) error {
	return fmt.Errorf("API returned status %d: %s", resp.StatusCode, readError(resp))
}

// GetUserByDiscordID resolves the site user linked to a Discord account
func (c *Client) GetUserByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf(PathUserByDiscord, url.PathEscape(discordID)), nil, requestOptions{discordID: discordID})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrDiscordNotLinked
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var body struct {
		User *domain.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if body.User == nil || body.User.ID == 0 {
		return nil, domain.ErrDiscordNotLinked
	}
	return body.User, nil
}

// GetUnclaimedRewards lists the rewards waiting to be claimed by a Discord user
func (c *Client) GetUnclaimedRewards(ctx context.Context, discordID string) ([]domain.UnclaimedReward, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf(PathUnclaimedRewards, url.PathEscape(discordID)), nil, requestOptions{discordID: discordID})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrDiscordNotLinked
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var body struct {
		Data    json.RawMessage `json:"data"`
		Rewards json.RawMessage `json:"rewards"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode rewards: %w", err)
	}

	// data wins over rewards when both are present
	raw := body.Data
	if isEmptyJSON(raw) {
		raw = body.Rewards
	}
	if isEmptyJSON(raw) {
		return []domain.UnclaimedReward{}, nil
	}

	if err := c.schemas.ValidateBytes(raw, validation.SchemaUnclaimedRewards); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	var rewards []domain.UnclaimedReward
	if err := json.Unmarshal(raw, &rewards); err != nil {
		return nil, fmt.Errorf("failed to decode rewards: %w", err)
	}
	for i := range rewards {
		rewards[i].Normalize()
	}
	return rewards, nil
}

// GetTrainers lists the trainers owned by a site user
func (c *Client) GetTrainers(ctx context.Context, discordID string, userID int64) ([]domain.Trainer, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf(PathTrainersByUser, userID), nil, requestOptions{discordID: discordID})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var body struct {
		Trainers json.RawMessage `json:"trainers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode trainers: %w", err)
	}

	var trainers []domain.Trainer
	if err := c.decodeRoster(body.Trainers, &trainers); err != nil {
		return nil, fmt.Errorf("trainers: %w", err)
	}
	return trainers, nil
}

// GetMonsters lists the monsters owned by a trainer
func (c *Client) GetMonsters(ctx context.Context, discordID string, trainerID int64) ([]domain.Monster, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf(PathMonstersByTrainer, trainerID), nil, requestOptions{discordID: discordID})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var body struct {
		Monsters json.RawMessage `json:"monsters"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode monsters: %w", err)
	}

	var monsters []domain.Monster
	if err := c.decodeRoster(body.Monsters, &monsters); err != nil {
		return nil, fmt.Errorf("monsters: %w", err)
	}
	return monsters, nil
}

func (c *Client) decodeRoster(raw json.RawMessage, out interface{}) error {
	if isEmptyJSON(raw) {
		return nil
	}
	if err := c.schemas.ValidateBytes(raw, validation.SchemaRoster); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode: %w", err)
	}
	return nil
}

// ClaimRewards submits a built claim. Retries reuse idempotencyKey so the
// backend applies the claim at most once. Any failure, including a non-2xx
// status, is returned as a *domain.SubmissionError.
func (c *Client) ClaimRewards(ctx context.Context, discordID string, req domain.ClaimRequest, idempotencyKey string) (domain.ClaimResult, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, PathClaimRewards, req, requestOptions{
		discordID:      discordID,
		idempotencyKey: idempotencyKey,
	})
	if err != nil {
		return domain.ClaimResult{}, &domain.SubmissionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.ClaimResult{}, &domain.SubmissionError{
			StatusCode: resp.StatusCode,
			Message:    readError(resp),
		}
	}

	var result domain.ClaimResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return domain.ClaimResult{}, &domain.SubmissionError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to decode claim result: %w", err),
		}
	}
	return result, nil
}

// Healthz checks that the backend is reachable. It does not retry.
func (c *Client) Healthz(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+PathHealthz, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// IsNotLinked reports whether err means the Discord account has no site user
func IsNotLinked(err error) bool {
	return errors.Is(err, domain.ErrDiscordNotLinked)
}

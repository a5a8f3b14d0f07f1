package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/pricing"
)

// DefaultEndpoint is the public Expo push API.
const DefaultEndpoint = "https://exp.host/--/api/v2/push/send"

// ErrDelivery indicates Expo rejected at least one message of a batch.
var ErrDelivery = errors.New("push delivery failed")

// TooManyRequestsError represents rate limiting signal from Expo.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Message is a single Expo push message.
type Message struct {
	To    string         `json:"to"`
	Sound string         `json:"sound,omitempty"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

// Client sends push messages.
type Client interface {
	Send(ctx context.Context, messages []Message) error
}

// HTTPClient implements Client via the Expo HTTP API.
type HTTPClient struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type ticket struct {
	Status  string `json:"status"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

type response struct {
	Data []ticket `json:"data"`
}

// NewHTTPClient creates Expo client with default timeout.
func NewHTTPClient(endpoint string, logger *slog.Logger) (*HTTPClient, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse expo url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("expo url must be absolute")
	}
	return &HTTPClient{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send posts messages as one batch.
func (c *HTTPClient) Send(ctx context.Context, messages []Message) error {
	if len(messages) == 0 {
		return nil
	}
	payload, err := json.Marshal(messages)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return err
		}
		var failed []string
		for _, t := range data.Data {
			if t.Status != "ok" {
				failed = append(failed, t.Message)
			}
		}
		if len(failed) > 0 {
			return fmt.Errorf("%w: %s", ErrDelivery, strings.Join(failed, "; "))
		}
		return nil
	case http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("expo push request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return fmt.Errorf("expo error: %s", resp.Status)
	}
}

// NewOrderMessages builds the admin notification for a created order, one
// message per device token.
func NewOrderMessages(tokens []string, event model.OrderEvent) []Message {
	messages := make([]Message, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, Message{
			To:    token,
			Sound: "default",
			Title: "Yeni Sipariş!",
			Body:  "Yeni bir sipariş alındı. Toplam: " + pricing.FormatMoney(event.Total),
			Data: map[string]any{
				"type":    "new_order",
				"orderId": event.OrderID,
				"screen":  "/admin/orders",
			},
		})
	}
	return messages
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}

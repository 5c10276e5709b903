package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/polkiloo/coursemart/internal/domain/errors"
	"github.com/polkiloo/coursemart/internal/domain/model"
)

// TooManyRequestsError represents rate limiting signal from the gateway.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Unwrap lets callers match rate limiting as a gateway failure.
func (e TooManyRequestsError) Unwrap() error {
	return domainErrors.ErrGatewayFailure
}

// HTTPGateway charges cards through a JSON payment API.
type HTTPGateway struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type chargeRequest struct {
	OrderID  string      `json:"orderId"`
	Amount   string      `json:"amount"`
	Currency string      `json:"currency"`
	Card     cardPayload `json:"card"`
}

type cardPayload struct {
	Number     string `json:"number"`
	ExpiryDate string `json:"expiryDate"`
	CVV        string `json:"cvv"`
	Name       string `json:"name"`
}

type chargeResponse struct {
	TransactionID string `json:"transactionId"`
	Reason        string `json:"reason,omitempty"`
}

// NewHTTPGateway creates HTTP gateway client with default timeout.
func NewHTTPGateway(baseURL string, logger *slog.Logger) (*HTTPGateway, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment gateway url must be absolute")
	}
	return &HTTPGateway{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Charge posts the charge. The order id doubles as idempotency key.
func (g *HTTPGateway) Charge(ctx context.Context, charge model.Charge) (model.ChargeResult, error) {
	endpoint := *g.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/charges")

	body, err := json.Marshal(chargeRequest{
		OrderID:  charge.OrderID,
		Amount:   charge.Amount.StringFixed(2),
		Currency: charge.Currency,
		Card: cardPayload{
			Number:     charge.Details.CardNumber,
			ExpiryDate: charge.Details.ExpiryDate,
			CVV:        charge.Details.CVV,
			Name:       charge.Details.Name,
		},
	})
	if err != nil {
		return model.ChargeResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return model.ChargeResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Idempotency-Key", charge.OrderID)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.ChargeResult{}, ctxErr
		}
		return model.ChargeResult{}, fmt.Errorf("%w: %v", domainErrors.ErrGatewayFailure, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var data chargeResponse
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return model.ChargeResult{}, fmt.Errorf("%w: decode response: %v", domainErrors.ErrGatewayFailure, err)
		}
		return model.ChargeResult{Approved: true, TransactionID: data.TransactionID}, nil
	case http.StatusPaymentRequired:
		var data chargeResponse
		_ = json.NewDecoder(resp.Body).Decode(&data)
		if data.Reason == "" {
			data.Reason = DeclineReason
		}
		return model.ChargeResult{Approved: false, TransactionID: data.TransactionID, Reason: data.Reason}, nil
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return model.ChargeResult{}, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		g.logger.Error("payment gateway request failed",
			slog.Int("status", resp.StatusCode),
			slog.String("order_id", charge.OrderID),
			slog.String("body", string(raw)),
		)
		return model.ChargeResult{}, fmt.Errorf("%w: %s", domainErrors.ErrGatewayFailure, resp.Status)
	}
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

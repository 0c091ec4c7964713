// Package gateway contains clients for external payment providers.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	portssvc "github.com/saifipay/saifi-backend/internal/core/ports/services"
	"github.com/saifipay/saifi-backend/internal/middleware"
)

// Provider action codes.
const (
	actionPayment       = 7100
	actionOfferPurchase = 7200
	actionAgentBalance  = 7400
	actionTxnStatus     = 1003
)

const requestTimeout = 30 * time.Second

// AlzajilClient talks to the Alzajil utility payment API. Request body keys
// are lowercased and all values sent as strings; response keys arrive in
// varying cases and are matched case-insensitively.
type AlzajilClient struct {
	baseURL    string
	username   string
	token      string
	httpClient *http.Client
}

// NewAlzajilClient creates a gateway client for the given endpoint and agent
// credentials.
func NewAlzajilClient(baseURL, username, token string) *AlzajilClient {
	return &AlzajilClient{
		baseURL:  baseURL,
		username: username,
		token:    token,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

var _ portssvc.PaymentGateway = (*AlzajilClient)(nil)

func (c *AlzajilClient) Pay(ctx context.Context, req portssvc.PaymentRequest) (*portssvc.PaymentResult, error) {
	action := req.ActionCode
	if action == 0 {
		action = actionPayment
	}

	body := map[string]string{
		"ac":  strconv.Itoa(action),
		"sc":  req.ServiceCode,
		"sno": req.SubscriberNo,
		"amt": req.Amount.String(),
		"usr": c.username,
		"tkn": c.token,
	}
	if action == actionOfferPurchase && req.OfferID != "" {
		body["sac"] = req.OfferID
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding payment request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building payment request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	return c.do(ctx, httpReq)
}

func (c *AlzajilClient) AgentBalance(ctx context.Context) (*portssvc.PaymentResult, error) {
	return c.get(ctx, map[string]string{
		"ac": strconv.Itoa(actionAgentBalance),
	})
}

func (c *AlzajilClient) TransactionStatus(ctx context.Context, reference string) (*portssvc.PaymentResult, error) {
	return c.get(ctx, map[string]string{
		"ac":  strconv.Itoa(actionTxnStatus),
		"ref": reference,
	})
}

func (c *AlzajilClient) get(ctx context.Context, params map[string]string) (*portssvc.PaymentResult, error) {
	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	query.Set("usr", c.username)
	query.Set("tkn", c.token)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building gateway request: %w", err)
	}
	return c.do(ctx, httpReq)
}

func (c *AlzajilClient) do(ctx context.Context, req *http.Request) (*portssvc.PaymentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling payment gateway: %w", err)
	}
	defer resp.Body.Close()

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding gateway response (status %d): %w", resp.StatusCode, err)
	}

	result := parseResult(raw)
	logger.Debug("Gateway response",
		"status", resp.StatusCode,
		"rc", result.Code,
		"success", result.Success)
	return result, nil
}

// parseResult normalizes the provider response. RC arrives as a number or a
// string depending on the endpoint; RC == 0 means success.
func parseResult(raw map[string]json.RawMessage) *portssvc.PaymentResult {
	result := &portssvc.PaymentResult{Code: -1}
	var balance string
	for key, value := range raw {
		switch strings.ToLower(key) {
		case "rc":
			result.Code = coerceInt(value)
		case "msg":
			result.Message = coerceString(value)
		case "ref":
			result.Reference = coerceString(value)
		case "bal":
			balance = coerceString(value)
		}
	}
	// Agent balance responses carry the figure in BAL rather than MSG.
	if result.Message == "" {
		result.Message = balance
	}
	result.Success = result.Code == 0
	return result
}

func coerceString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

func coerceInt(raw json.RawMessage) int {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(f)
	}
	if v, err := strconv.Atoi(coerceString(raw)); err == nil {
		return v
	}
	return -1
}

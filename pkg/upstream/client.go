package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/r70610363/swiftcart-backend/pkg/config"
	"github.com/r70610363/swiftcart-backend/pkg/models"
)

// Client talks to the optional backing API. Every caller treats a failure
// here as a cue to fall back to the local store, never as a fatal condition.
type Client struct {
	base    string
	http    *http.Client
	enabled bool
}

// New builds the upstream client. A disabled or unconfigured upstream yields
// a client whose Enabled() is false; callers then skip it entirely.
func New(cfg config.UpstreamConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout},
		enabled: cfg.Enabled && base != "",
	}
}

// Enabled reports whether upstream calls should be attempted at all.
func (c *Client) Enabled() bool {
	return c != nil && c.enabled
}

// PaymentRequest is the initiate-payment body.
type PaymentRequest struct {
	Amount  int    `json:"amount"`
	OrderID string `json:"orderId"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
}

// PaymentResponse covers both gateway response shapes: a session id for a
// hosted flow, or an explicit success flag with an optional redirect.
type PaymentResponse struct {
	PaymentSessionID string `json:"payment_session_id,omitempty"`
	Success          bool   `json:"success,omitempty"`
	RedirectURL      string `json:"redirectUrl,omitempty"`
}

// RegisterRequest is the register-user body.
type RegisterRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveProduct(ctx context.Context, product models.Product) error {
	return c.do(ctx, http.MethodPost, "/products", product, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) FetchOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateOrder(ctx context.Context, order models.Order) (models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", order, &out); err != nil {
		return models.Order{}, err
	}
	return out, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id), body, nil)
}

func (c *Client) CheckUser(ctx context.Context, identifier string) (bool, error) {
	var out struct {
		Exists bool `json:"exists"`
	}
	path := "/users/check?id=" + url.QueryEscape(identifier)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return false, err
	}
	return out.Exists, nil
}

func (c *Client) RegisterUser(ctx context.Context, req RegisterRequest) (models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (c *Client) LoginUser(ctx context.Context, identifier string) (models.User, error) {
	var out models.User
	body := map[string]string{"identifier": identifier}
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (c *Client) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(user.ID), user, &out); err != nil {
		return models.User{}, err
	}
	return out, nil
}

func (c *Client) InitiatePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error) {
	var out PaymentResponse
	if err := c.do(ctx, http.MethodPost, "/payment/initiate", req, &out); err != nil {
		return PaymentResponse{}, err
	}
	return out, nil
}

func (c *Client) SendOTP(ctx context.Context, mobile string) error {
	body := map[string]string{"mobile": mobile}
	return c.do(ctx, http.MethodPost, "/send-otp", body, nil)
}

func (c *Client) VerifyOTP(ctx context.Context, mobile, code string) (bool, string, error) {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	body := map[string]string{"mobile": mobile, "code": code}
	if err := c.do(ctx, http.MethodPost, "/verify-otp", body, &out); err != nil {
		return false, "", err
	}
	return out.Success, out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	if !c.Enabled() {
		return fmt.Errorf("upstream disabled")
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: %s", method, path, upstreamErrorMessage(resp))
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func upstreamErrorMessage(resp *http.Response) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return resp.Status
}

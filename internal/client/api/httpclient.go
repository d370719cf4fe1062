package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dkovalev7/scentshop/internal/client/models"
)

const apiPrefix = "/api/v1"

// errTokenExpired is internal to the client: it triggers the transparent
// refresh-and-retry path and is never returned to callers.
var errTokenExpired = errors.New("access token expired")

// HTTPClient talks to the ScentShop REST API. It injects the bearer token on
// every request and, when the server answers 401 "token expired", rotates the
// token pair via the refresh endpoint and retries the request once.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	tokens models.TokenPair
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) SetTokens(pair models.TokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = pair
}

func (c *HTTPClient) Tokens() models.TokenPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokens
}

// errorBody is the API error envelope. FastAPI-style backends use "detail";
// "message" is accepted as a fallback.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (c *HTTPClient) doOnce(ctx context.Context, method, path string, in, out any, token string) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return mapError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// mapError classifies an error response exactly once. Callers further up
// match on the returned sentinel/typed errors, never on status codes.
func mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var eb errorBody
	_ = json.Unmarshal(raw, &eb)
	detail := eb.Detail
	if detail == "" {
		detail = eb.Message
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if strings.EqualFold(detail, "token expired") {
			return errTokenExpired
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
	case http.StatusConflict:
		return &ConflictError{Reason: detail}
	default:
		return fmt.Errorf("api error (%d): %s", resp.StatusCode, detail)
	}
}

// do performs a request with the current access token, refreshing the pair
// and retrying once when the token has expired.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	err := c.doOnce(ctx, method, path, in, out, c.Tokens().AccessToken)
	if !errors.Is(err, errTokenExpired) {
		return err
	}

	refresh := c.Tokens().RefreshToken
	if refresh == "" {
		return fmt.Errorf("%w: token expired", ErrUnauthorized)
	}

	var pair models.TokenPair
	if rerr := c.doOnce(ctx, http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": refresh}, &pair, ""); rerr != nil {
		return rerr
	}
	c.SetTokens(pair)

	err = c.doOnce(ctx, method, path, in, out, pair.AccessToken)
	if errors.Is(err, errTokenExpired) {
		return fmt.Errorf("%w: token expired", ErrUnauthorized)
	}
	return err
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, username, email string, password []byte) (*models.TokenPair, error) {
	var pair models.TokenPair
	req := registerRequest{Username: username, Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &pair); err != nil {
		return nil, err
	}
	c.SetTokens(pair)
	return &pair, nil
}

func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) (*models.TokenPair, error) {
	var pair models.TokenPair
	req := loginRequest{Email: email, Password: string(password)}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &pair); err != nil {
		return nil, err
	}
	c.SetTokens(pair)
	return &pair, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	refresh := c.Tokens().RefreshToken
	return c.do(ctx, http.MethodPost, "/auth/logout", map[string]string{"refresh_token": refresh}, nil)
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListPerfumes(ctx context.Context, skip, limit int) ([]models.Perfume, error) {
	var perfumes []models.Perfume
	path := fmt.Sprintf("/perfumes/?skip=%d&limit=%d", skip, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &perfumes); err != nil {
		return nil, err
	}
	return perfumes, nil
}

func (c *HTTPClient) GetPerfume(ctx context.Context, id int64) (*models.Perfume, error) {
	var p models.Perfume
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/perfumes/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) CreatePerfume(ctx context.Context, p *models.Perfume) (*models.Perfume, error) {
	var created models.Perfume
	if err := c.do(ctx, http.MethodPost, "/perfumes/", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdatePerfume(ctx context.Context, p *models.Perfume) (*models.Perfume, error) {
	var updated models.Perfume
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/perfumes/%d", p.ID), p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeletePerfume(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/perfumes/%d", id), nil, nil)
}

type cartEnvelope struct {
	Items []models.CartItem `json:"items"`
}

type cartAddRequest struct {
	PerfumeID int64 `json:"perfume_id"`
	Quantity  int   `json:"quantity"`
}

type cartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

func (c *HTTPClient) GetCart(ctx context.Context) ([]models.CartItem, error) {
	var env cartEnvelope
	if err := c.do(ctx, http.MethodGet, "/cart/", nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

func (c *HTTPClient) AddToCart(ctx context.Context, perfumeID int64, quantity int) error {
	return c.do(ctx, http.MethodPost, "/cart/", cartAddRequest{PerfumeID: perfumeID, Quantity: quantity}, nil)
}

func (c *HTTPClient) UpdateQuantity(ctx context.Context, perfumeID int64, quantity int) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/cart/%d", perfumeID), cartUpdateRequest{Quantity: quantity}, nil)
}

func (c *HTTPClient) RemoveFromCart(ctx context.Context, perfumeID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", perfumeID), nil, nil)
}

func (c *HTTPClient) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/cart/", nil, nil)
}

func (c *HTTPClient) CreateOrder(ctx context.Context, req *models.OrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders/", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *HTTPClient) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders/", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *HTTPClient) RequestImageUpload(ctx context.Context, filename string) (*models.ImageUploadTicket, error) {
	var ticket models.ImageUploadTicket
	if err := c.do(ctx, http.MethodPost, "/uploads/image", map[string]string{"filename": filename}, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

var _ Client = (*HTTPClient)(nil)

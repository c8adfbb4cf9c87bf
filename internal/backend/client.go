package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"go-admin-dashboard/internal/domain"
)

// Client 对后端 REST 的统一出口：base URL 只配这一处，
// 带 token 的请求统一加 Authorization 头。所有调用都吃 ctx，
// 页面请求断了出站调用跟着取消。
type Client struct {
	baseURL string
	hc      *http.Client
	log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Login POST /login；失败不区分网络错误和凭证错误，上层统一提示
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/login", "", body, &out); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// Register POST /register；自助注册和邀请共用
func (c *Client) Register(ctx context.Context, token string, in RegisterInput) (domain.User, error) {
	var out domain.User
	if err := c.doJSON(ctx, http.MethodPost, "/register", token, in, &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}

func (c *Client) Stats(ctx context.Context, token string) (domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := c.doJSON(ctx, http.MethodGet, "/stats", token, nil, &out); err != nil {
		return domain.DashboardStats{}, err
	}
	return out, nil
}

func (c *Client) ListProducts(ctx context.Context, token string) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct multipart 提交：name/price/stock 三个文本字段，
// 没选图就完全不带 image 字段。
func (c *Client) CreateProduct(ctx context.Context, token string, in CreateProductInput) (domain.Product, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fields := map[string]string{"name": in.Name, "price": in.Price, "stock": in.Stock}
	for _, k := range []string{"name", "price", "stock"} {
		if err := w.WriteField(k, fields[k]); err != nil {
			return domain.Product{}, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if in.Image != nil {
		part, err := createImagePart(w, in.Image)
		if err != nil {
			return domain.Product{}, err
		}
		if _, err := io.Copy(part, in.Image.Reader); err != nil {
			return domain.Product{}, fmt.Errorf("copy image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return domain.Product{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/products", &buf)
	if err != nil {
		return domain.Product{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	setAuth(req, token)

	var out domain.Product
	if err := c.send(req, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), token, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var out []domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/users", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), token, nil, nil)
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	setAuth(req, token)
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		apiErr := &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
		if c.log != nil {
			c.log.Warn("backend call failed",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", resp.StatusCode),
			)
		}
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func createImagePart(w *multipart.Writer, img *ImageUpload) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename="%s"`, escapeQuotes(img.Filename)))
	ct := img.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)
	return w.CreatePart(h)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CredentialFunc 在每次请求时取当前凭证；返回空串表示未认证
// CredentialFunc returns the current credential at call time; empty means unauthenticated
type CredentialFunc func() string

// Options 网关的横切行为注入点
// Options are the gateway's cross-cutting injection points
type Options struct {
	// Credential 每次请求重新读取，凭证变化在下一次调用即生效
	// Credential is re-read per request, so a credential change takes effect on the very next call
	Credential CredentialFunc

	// OnAuthFailure 在任意响应返回 401 时、错误向上传播之前调用
	// OnAuthFailure runs on any 401 response, before the error propagates
	OnAuthFailure func()
}

// Client 共享 HTTP 网关：所有组件经由它访问后端
// Client is the shared HTTP gateway; every component reaches the backend through it
type Client struct {
	baseURL       string
	httpClient    *http.Client
	credential    CredentialFunc
	onAuthFailure func()
}

func New(baseURL string, timeout time.Duration, opts Options) *Client {
	credential := opts.Credential
	if credential == nil {
		credential = func() string { return "" }
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: timeout},
		credential:    credential,
		onAuthFailure: opts.OnAuthFailure,
	}
}

// BaseURL 返回网关指向的服务地址 / BaseURL returns the backend address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON 发送 GET 并解码 JSON 响应 / GetJSON issues a GET and decodes the JSON response
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

// PostJSON 发送 JSON body 的 POST / PostJSON issues a POST with a JSON body
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, body, "application/json", out)
}

// PutJSON 发送 JSON body 的 PUT / PutJSON issues a PUT with a JSON body
func (c *Client) PutJSON(ctx context.Context, path string, in, out any) error {
	body, err := encodeJSON(in)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, body, "application/json", out)
}

// PostForm 发送 form-url-encoded 的 POST，登录端点使用此格式
// PostForm issues a form-url-encoded POST; the login endpoint uses this format
func (c *Client) PostForm(ctx context.Context, path string, form url.Values, out any) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, body, "application/x-www-form-urlencoded", out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.credential(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized && c.onAuthFailure != nil {
			// 单次过期响应即全局失效凭证，与触发调用无关
			// One expired-credential response invalidates the credential globally,
			// regardless of which call happened to fail
			c.onAuthFailure()
		}
		return decodeError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response %s %s: %w", method, path, err)
	}
	return nil
}

func encodeJSON(in any) (io.Reader, error) {
	if in == nil {
		return nil, nil
	}
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"forathlete/internal/api"
	"forathlete/internal/i18n"
	"forathlete/internal/storage"
)

// State 会话快照 / State is a session snapshot
type State struct {
	Authenticated bool
	Loading       bool
}

// Identity 后端身份校验端点返回的用户信息
// Identity is the user record returned by the backend identity endpoint
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Manager 持有内存中的凭证并驱动 登录/登出/引导 状态转换。
// 它同时充当网关的凭证提供方：每次请求经 Credential 重新读取。
//
// Manager owns the in-memory credential and drives the login/logout/bootstrap
// transitions. It doubles as the gateway's credential provider: every request
// re-reads through Credential.
type Manager struct {
	store   storage.TokenStore
	gateway *api.Client

	mu      sync.RWMutex
	token   string
	loading bool
}

func NewManager(store storage.TokenStore) *Manager {
	return &Manager{store: store}
}

// SetGateway 注入网关；网关构造时需要 Manager 的 Credential/Invalidate，
// 因此存在先 Manager 后网关的两段式装配。
// SetGateway injects the gateway; the gateway is built against the manager's
// Credential/Invalidate, hence the two-step assembly.
func (m *Manager) SetGateway(c *api.Client) {
	m.gateway = c
}

// Credential 供网关在每次请求时读取当前凭证
// Credential is read by the gateway on every request
func (m *Manager) Credential() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Invalidate 在任意 401 响应后清除存储与内存中的凭证
// Invalidate purges the stored and in-memory credential after any 401
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	_ = m.store.DeleteToken()
}

// State 返回会话快照 / State returns a session snapshot
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{Authenticated: m.token != "", Loading: m.loading}
}

// Bootstrap 从 Token Store 恢复会话。空存储立即返回未认证且不发网络请求；
// 存有凭证则必须先过身份校验：401/404 清除凭证，网络失败保留凭证留待下次
// 启动重试，两种情况都以未认证收尾。该操作总会终止，不会停留在 loading。
//
// Bootstrap restores the session from the token store. An empty store resolves
// unauthenticated immediately with no network call. A stored credential must
// pass identity validation first: 401/404 purges it, while a transport failure
// keeps it for retry on next launch; both resolve unauthenticated. The
// operation always terminates and never stays loading.
func (m *Manager) Bootstrap(ctx context.Context) State {
	m.mu.Lock()
	m.loading = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	stored, err := m.store.Token()
	if err != nil || stored == "" {
		return State{}
	}

	// 校验期间凭证临时生效，网关据此携带 Authorization
	// The candidate credential is active during validation so the gateway attaches it
	m.mu.Lock()
	m.token = stored
	m.mu.Unlock()

	var me Identity
	if err := m.gateway.GetJSON(ctx, "/api/auth/me", &me); err != nil {
		m.mu.Lock()
		m.token = ""
		m.mu.Unlock()
		if api.IsNotFound(err) {
			// 401 已由网关钩子清除；404（账号已注销）在这里清除
			// A 401 is purged by the gateway hook; a 404 (account gone) is purged here
			_ = m.store.DeleteToken()
		}
		return State{}
	}

	return State{Authenticated: true}
}

// Login 交换凭证。成功后先持久化再在内存中生效，后续请求即自动携带。
// Login exchanges credentials. On success the token is persisted first, then
// activated in memory; subsequent requests carry it automatically.
func (m *Manager) Login(ctx context.Context, identifier, secret string) error {
	form := url.Values{}
	form.Set("username", identifier)
	form.Set("password", secret)

	var resp loginResponse
	if err := m.gateway.PostForm(ctx, "/api/auth/login", form, &resp); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return apiErr
		}
		return fmt.Errorf("%s", i18n.T("auth.login_failed"))
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("%s", i18n.T("auth.login_failed"))
	}

	if err := m.store.SaveToken(resp.AccessToken); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	m.mu.Lock()
	m.token = resp.AccessToken
	m.mu.Unlock()
	return nil
}

// Register 创建账号；调用方随后自行走 Login
// Register creates an account; the caller follows up with Login
func (m *Manager) Register(ctx context.Context, email, name, password string) error {
	payload := map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	}
	return m.gateway.PostJSON(ctx, "/api/auth/register", payload, nil)
}

// Logout 无条件清除内存凭证；存储清除失败也不回滚，UI 不得再以已认证身份行事
// Logout clears the in-memory credential unconditionally; a failed purge does
// not roll it back, so the UI can never keep acting authenticated
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	if err := m.store.DeleteToken(); err != nil {
		return fmt.Errorf("purge credential: %w", err)
	}
	return nil
}

// Me 返回当前身份 / Me returns the current identity
func (m *Manager) Me(ctx context.Context) (Identity, error) {
	var me Identity
	if err := m.gateway.GetJSON(ctx, "/api/auth/me", &me); err != nil {
		return Identity{}, err
	}
	return me, nil
}

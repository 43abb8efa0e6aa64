package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tipjar/internal/chain"
	"tipjar/internal/contract"
	"tipjar/internal/contract/contracttest"
	"tipjar/internal/server"
	"tipjar/internal/service/session"
	"tipjar/internal/service/tipjar"
	"tipjar/internal/wallet"
	"tipjar/pkg/errno"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

type testServer struct {
	router  *gin.Engine
	backend *contracttest.Backend
	user    common.Address
	sid     string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	addr := common.HexToAddress("0x00000000000000000000000000000000000071b5")
	backend := contracttest.NewBackend(addr)
	svc := tipjar.NewService(
		contract.NewTipJar(addr, backend),
		wallet.NewRegistry(wallet.NewStaticConnector("static", key)),
		chain.Sepolia,
		tipjar.Options{},
	)
	return &testServer{
		router:  server.NewHTTPRouter(session.NewStore(svc, time.Minute)),
		backend: backend,
		user:    crypto.PubkeyToAddress(key.PublicKey),
	}
}

// do 发送请求并记住服务端分配的会话 ID
func (s *testServer) do(t *testing.T, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.sid != "" {
		req.Header.Set(session.HeaderName, s.sid)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if sid := w.Header().Get(session.HeaderName); sid != "" {
		s.sid = sid
	}
	return w
}

func (s *testServer) api(t *testing.T, method, path string, payload interface{}) envelope {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	w := s.do(t, method, path, body, "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func (s *testServer) form(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, path, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	env := s.api(t, http.MethodGet, "/health", nil)
	assert.Equal(t, 0, env.Code)

	var health struct {
		Status   string `json:"status"`
		Contract string `json:"contract"`
		Network  string `json:"network"`
		ChainID  string `json:"chain_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &health))
	assert.Equal(t, "UP", health.Status)
	assert.Equal(t, "0x00000000000000000000000000000000000071b5", strings.ToLower(health.Contract))
	assert.Equal(t, chain.Sepolia.String(), health.Network)
	assert.Equal(t, "11155111", health.ChainID)
}

func TestSessionCookie(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/v1/state", nil, "")

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, cookie.Value, w.Header().Get(session.HeaderName))

	// 携带 cookie 时复用同一会话，不再下发 cookie
	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	req.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	s.router.ServeHTTP(w2, req)
	assert.Equal(t, cookie.Value, w2.Header().Get(session.HeaderName))
	assert.Empty(t, w2.Result().Cookies())
}

func TestAPIFlow(t *testing.T) {
	s := newTestServer(t)

	env := s.api(t, http.MethodGet, "/api/v1/state", nil)
	require.Equal(t, 0, env.Code)
	var st struct {
		Connected bool     `json:"connected"`
		Providers []string `json:"providers"`
		Tips      string   `json:"tips"`
		Notice    string   `json:"notice"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.False(t, st.Connected)
	assert.Equal(t, []string{"static"}, st.Providers)

	env = s.api(t, http.MethodPost, "/api/v1/tips/refresh", nil)
	assert.Equal(t, errno.ErrNotConnected.Code, env.Code)
	assert.Equal(t, 0, s.backend.TotalCalls())

	env = s.api(t, http.MethodPost, "/api/v1/wallet/connect", gin.H{"provider": "static"})
	require.Equal(t, 0, env.Code, env.Msg)
	assert.Contains(t, string(env.Data), s.user.Hex())

	env = s.api(t, http.MethodPost, "/api/v1/tips/donate", gin.H{"amount": "abc"})
	assert.Equal(t, errno.ErrInvalidAmount.Code, env.Code)
	assert.Equal(t, "Enter a number > 0", env.Msg)
	assert.Empty(t, s.backend.Sent())

	s.backend.SetTips(s.user, big.NewInt(40))
	env = s.api(t, http.MethodPost, "/api/v1/tips/donate", gin.H{"amount": "2"})
	require.Equal(t, 0, env.Code, env.Msg)
	var res struct {
		TxHash      string `json:"tx_hash"`
		BlockNumber uint64 `json:"block_number"`
		Tips        string `json:"tips"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "42", res.Tips)
	assert.NotEmpty(t, res.TxHash)
	assert.Len(t, s.backend.Sent(), 1)

	env = s.api(t, http.MethodPost, "/api/v1/tips/refresh", nil)
	require.Equal(t, 0, env.Code)
	assert.Contains(t, string(env.Data), `"tips":"42"`)

	env = s.api(t, http.MethodPost, "/api/v1/wallet/disconnect", nil)
	require.Equal(t, 0, env.Code)

	env = s.api(t, http.MethodGet, "/api/v1/state", nil)
	require.NoError(t, json.Unmarshal(env.Data, &st))
	assert.False(t, st.Connected)
	assert.Empty(t, st.Tips)
}

func TestAPIConnectValidation(t *testing.T) {
	s := newTestServer(t)

	env := s.api(t, http.MethodPost, "/api/v1/wallet/connect", gin.H{})
	assert.Equal(t, errno.ErrBind.Code, env.Code)
	assert.Contains(t, env.Msg, "provider")

	env = s.api(t, http.MethodPost, "/api/v1/wallet/connect", gin.H{"provider": "metamask"})
	assert.Equal(t, errno.ErrWalletUnavailable.Code, env.Code)
}

func TestPageFlow(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Encrypted Tip Jar")
	assert.Contains(t, w.Body.String(), "Connect static")

	// 未知连接器被静默忽略
	w = s.form(t, "/connect", url.Values{"provider": {"metamask"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotContains(t, s.do(t, http.MethodGet, "/", nil, "").Body.String(), "Connected as")

	w = s.form(t, "/connect", url.Values{"provider": {"static"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	body := s.do(t, http.MethodGet, "/", nil, "").Body.String()
	assert.Contains(t, body, "Connected as")
	assert.Contains(t, body, s.user.Hex())

	s.form(t, "/donate", url.Values{"amount": {"0"}})
	body = s.do(t, http.MethodGet, "/", nil, "").Body.String()
	assert.Contains(t, body, "Enter a number &gt; 0")
	assert.Empty(t, s.backend.Sent())

	s.backend.SetTips(s.user, big.NewInt(42))
	s.form(t, "/refresh", nil)
	body = s.do(t, http.MethodGet, "/", nil, "").Body.String()
	assert.Contains(t, body, "<strong>42</strong>")

	s.form(t, "/donate", url.Values{"amount": {"8"}})
	assert.Eventually(t, func() bool {
		return strings.Contains(s.do(t, http.MethodGet, "/", nil, "").Body.String(), "Donation sent!")
	}, 5*time.Second, 20*time.Millisecond)
	assert.Contains(t, s.do(t, http.MethodGet, "/", nil, "").Body.String(), "<strong>50</strong>")

	s.form(t, "/disconnect", nil)
	body = s.do(t, http.MethodGet, "/", nil, "").Body.String()
	assert.NotContains(t, body, "Connected as")
	assert.Contains(t, body, "Connect static")
}

package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID заголовок с идентификатором запроса
const HeaderRequestID = "X-Request-ID"

// Transport interceptor всех запросов к backend.
// Добавляет Bearer токен и закрывает сессию, если backend отверг приложенный токен.
// Токен уходит только на scheme+host backend, в том числе после редиректа.
type Transport struct {
	base    http.RoundTripper
	manager *Manager
	log     *zap.Logger
	scheme  string
	host    string
}

// NewTransport оборачивает base (nil - http.DefaultTransport).
// backendURL адрес backend, которому можно отдавать токен.
// Если адрес не разбирается, токен не прикладывается ни к одному запросу.
func NewTransport(manager *Manager, backendURL string, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	t := &Transport{
		base:    base,
		manager: manager,
		log:     manager.log.Named("http"),
	}
	if u, err := url.Parse(backendURL); err == nil && u.Host != "" {
		t.scheme = u.Scheme
		t.host = u.Host
	} else {
		t.log.Warn("backend url has no host, requests go without token", zap.String("url", backendURL))
	}
	return t
}

func (t *Transport) trusted(u *url.URL) bool {
	return t.host != "" &&
		strings.EqualFold(u.Scheme, t.scheme) &&
		strings.EqualFold(u.Host, t.host)
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	// RoundTripper не должен менять исходный запрос
	req = req.Clone(ctx)
	if req.Header.Get(HeaderRequestID) == "" {
		req.Header.Set(HeaderRequestID, uuid.NewString())
	}

	var token string
	attached := false
	if t.trusted(req.URL) {
		token, attached = t.manager.Token(ctx)
	}
	if attached {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.String("request_id", req.Header.Get(HeaderRequestID)),
		zap.Bool("authenticated", attached),
		zap.Duration("duration", time.Since(start)),
	}
	if err != nil {
		t.log.Debug("request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	t.log.Debug("request completed", append(fields, zap.Int("status", resp.StatusCode))...)

	if attached && resp.StatusCode == http.StatusUnauthorized {
		// Выход не должен зависеть от отмены исходного запроса
		closed, _ := t.manager.Reject(context.WithoutCancel(ctx), token)
		t.log.Warn("token rejected by server",
			zap.String("path", req.URL.Path),
			zap.Bool("session_closed", closed),
		)
	}
	return resp, nil
}

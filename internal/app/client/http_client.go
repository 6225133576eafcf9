package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/exp/slog"

	"notive/internal/app/client/config"
)

var ErrUnauthorized = errors.New("требуется вход: выполните notive login")

// APIError - ответ сервера со статусом 4xx/5xx.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ошибка сервера: статус %d", e.Status)
	}
	return fmt.Sprintf("ошибка сервера (%d): %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Entry - запись, как ее отдает сервер.
type Entry struct {
	Content      string     `json:"content"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

type HTTPClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) *HTTPClient {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &HTTPClient{
		client:    client,
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   cfg.BaseURL(),
		userAgent: "Notive-Client/1.0",
	}
}

// SetToken устанавливает токен аутентификации
func (h *HTTPClient) SetToken(token string) {
	h.token = token
}

// HealthCheck проверяет доступность сервера
func (h *HTTPClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("сервер недоступен: %w", err)
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := h.parseResponse(resp, &health); err != nil {
		return err
	}
	if health.Status != "OK" {
		return fmt.Errorf("сервер вернул статус: %s", health.Status)
	}

	return nil
}

// GetEntry читает запись за дату; отсутствующая запись приходит пустой.
func (h *HTTPClient) GetEntry(ctx context.Context, dateKey string) (Entry, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/entry/"+url.PathEscape(dateKey), nil)
	if err != nil {
		return Entry{}, err
	}

	var e Entry
	if err := h.parseResponse(resp, &e); err != nil {
		return Entry{}, err
	}

	return e, nil
}

// SaveEntry полностью перезаписывает запись за дату.
func (h *HTTPClient) SaveEntry(ctx context.Context, dateKey, content string) error {
	body := struct {
		Content string `json:"content"`
	}{Content: content}

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/entry/"+url.PathEscape(dateKey), body)
	if err != nil {
		return err
	}

	var saved struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := h.parseResponse(resp, &saved); err != nil {
		return err
	}
	if !saved.Success {
		return fmt.Errorf("запись не сохранена: %s", saved.Message)
	}

	return nil
}

// ListEntries возвращает даты с записями, новые первыми.
func (h *HTTPClient) ListEntries(ctx context.Context) ([]string, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/entries", nil)
	if err != nil {
		return nil, err
	}

	var list struct {
		Entries []string `json:"entries"`
	}
	if err := h.parseResponse(resp, &list); err != nil {
		return nil, err
	}

	return list.Entries, nil
}

// Login получает токен сессии для имени пользователя.
func (h *HTTPClient) Login(ctx context.Context, username string) (string, error) {
	req := struct {
		Username string `json:"username"`
	}{Username: username}

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/session", req)
	if err != nil {
		return "", err
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	if err := h.parseResponse(resp, &loginResp); err != nil {
		return "", err
	}

	h.SetToken(loginResp.Token)
	return loginResp.Token, nil
}

// Preview рендерит markdown на сервере.
func (h *HTTPClient) Preview(ctx context.Context, content string) (string, error) {
	req := struct {
		Content string `json:"content"`
	}{Content: content}

	resp, err := h.doRequest(ctx, http.MethodPost, "/api/preview", req)
	if err != nil {
		return "", err
	}

	var out struct {
		HTML string `json:"html"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return "", err
	}

	return out.HTML, nil
}

func (h *HTTPClient) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	// Добавляем заголовки
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("Отправка запроса",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}

	return resp, nil
}

func (h *HTTPClient) parseResponse(resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	h.log.Debug("Получен ответ",
		"status", resp.StatusCode,
		"size", len(body),
	)

	if resp.StatusCode >= 400 {
		// {error} пишет auth middleware, {detail} - huma
		var errResp struct {
			Error  string `json:"error"`
			Detail string `json:"detail"`
		}
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(body, &errResp); err == nil {
			apiErr.Message = errResp.Error
			if apiErr.Message == "" {
				apiErr.Message = errResp.Detail
			}
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("ошибка парсинга ответа: %w", err)
		}
	}

	return nil
}

package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"notive/internal/app/client/config"
	"notive/internal/app/client/editor"
	"notive/internal/app/client/kv"
	"notive/internal/app/client/widget"
)

// Store - локальное хранилище виджетов
type Store interface {
	widget.KV
	Close() error
}

type App struct {
	config     *config.Config
	log        *slog.Logger
	httpClient *HTTPClient
	storage    Store
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	httpCl := NewHTTPClient(cfg, log)

	// Инициализируем локальное хранилище (используем SQLite)
	var storage Store
	sqliteStorage, err := kv.NewSQLiteStorage(cfg.DataPath)
	if err != nil {
		log.Warn("Не удалось инициализировать SQLite, используем память", "error", err)
		storage = kv.NewMemoryStorage()
	} else {
		storage = sqliteStorage
	}

	app := &App{
		config:     cfg,
		log:        log,
		httpClient: httpCl,
		storage:    storage,
	}

	if token, err := app.GetToken(); err == nil {
		httpCl.SetToken(token)
	}

	return app, nil
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Logger() *slog.Logger {
	return a.log
}

func (a *App) API() *HTTPClient {
	return a.httpClient
}

// CheckConnection проверяет доступность сервера
func (a *App) CheckConnection(ctx context.Context) error {
	return a.httpClient.HealthCheck(ctx)
}

// NewEditor создает редактор, который читает и пишет записи через API.
func (a *App) NewEditor(render editor.Renderer, opts ...editor.Option) *editor.Editor {
	opts = append([]editor.Option{
		editor.WithDelay(a.config.AutosaveDelay),
		editor.WithLogger(a.log),
	}, opts...)

	return editor.New(entryStore{api: a.httpClient}, render, opts...)
}

func (a *App) Tasks(ctx context.Context) (*widget.Tasks, error) {
	t := widget.NewTasks(a.storage)
	return t, t.Load(ctx)
}

func (a *App) Notes(ctx context.Context) (*widget.Notes, error) {
	n := widget.NewNotes(a.storage)
	return n, n.Load(ctx)
}

func (a *App) Goals(ctx context.Context) (*widget.Goals, error) {
	g := widget.NewGoals(a.storage)
	return g, g.Load(ctx)
}

// Login получает токен у сервера и сохраняет его
func (a *App) Login(ctx context.Context, username string) error {
	token, err := a.httpClient.Login(ctx, username)
	if err != nil {
		return fmt.Errorf("ошибка входа: %w", err)
	}

	return a.SaveToken(token)
}

// GetToken возвращает сохраненный токен
func (a *App) GetToken() (string, error) {
	tokenBytes, err := os.ReadFile(a.config.TokenPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("токен не найден. Выполните вход: notive login")
		}
		return "", fmt.Errorf("ошибка чтения токена: %w", err)
	}
	return strings.TrimSpace(string(tokenBytes)), nil
}

// SaveToken сохраняет токен аутентификации
func (a *App) SaveToken(token string) error {
	if err := os.WriteFile(a.config.TokenPath, []byte(token), 0o600); err != nil {
		return fmt.Errorf("ошибка сохранения токена: %w", err)
	}

	a.httpClient.SetToken(token)

	return nil
}

// ClearToken удаляет токен
func (a *App) ClearToken() error {
	if err := os.Remove(a.config.TokenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}

	a.httpClient.SetToken("")

	return nil
}

func (a *App) Close() error {
	return a.storage.Close()
}

// entryStore связывает редактор с HTTP API.
type entryStore struct {
	api *HTTPClient
}

func (s entryStore) Load(ctx context.Context, dateKey string) (string, error) {
	e, err := s.api.GetEntry(ctx, dateKey)
	if err != nil {
		return "", err
	}
	return e.Content, nil
}

func (s entryStore) Save(ctx context.Context, dateKey, content string) error {
	return s.api.SaveEntry(ctx, dateKey, content)
}

package entry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"notive/cmd/client/cmd/types"
	"notive/internal/app/client/editor"
	"notive/internal/render"
)

const closeTimeout = 10 * time.Second

var (
	editFile    string
	showPreview bool
)

var EditCmd = &cobra.Command{
	Use:   "edit [date]",
	Short: "Редактировать запись с автосохранением",
	Long: `Выгружает запись в markdown-файл и следит за ним.
Открывайте файл в любом редакторе: каждое сохранение файла считается правкой,
запись уходит на сервер через секунду после последней правки.

Ctrl+C завершает работу, несохранённые правки отправляются сразу.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		dateKey, err := ResolveDate(args, time.Now())
		if err != nil {
			return err
		}

		path := editFile
		if path == "" {
			path = filepath.Join(app.Config().ConfigDir, "edit", dateKey+".md")
		}
		path, err = filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("ошибка пути к файлу: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		printer := &statusPrinter{}
		width := TerminalWidth()
		preview := func(src string) string {
			if !showPreview {
				return ""
			}
			return render.Terminal(src, width)
		}

		ed := app.NewEditor(preview, editor.WithOnChange(printer.print))
		if err := ed.Open(ctx, dateKey); err != nil {
			return fmt.Errorf("ошибка открытия записи: %w", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
			defer cancel()
			if err := ed.Close(closeCtx); err != nil {
				color.Red("✗ Не удалось сохранить последние правки: %v", err)
			}
		}()

		view := ed.View()
		if view.Status == editor.StatusLoadError {
			return fmt.Errorf("не удалось загрузить запись за %s", dateKey)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return fmt.Errorf("ошибка создания каталога: %w", err)
		}
		if err := os.WriteFile(path, []byte(view.Buffer), 0o600); err != nil {
			return fmt.Errorf("ошибка записи файла: %w", err)
		}

		color.Cyan("Запись за %s: %s", dateKey, path)
		fmt.Println("Сохраняйте файл в редакторе, Ctrl+C для выхода")

		return watch(ctx, path, view.Buffer, func(content string) {
			ed.Edit(content)
			if showPreview {
				fmt.Print(ed.View().Preview)
			}
		}, app.Logger())
	},
}

// watch вызывает onEdit с новым содержимым файла после каждой записи в него.
// Следим за каталогом: редакторы часто сохраняют через rename.
func watch(ctx context.Context, path, initial string, onEdit func(string), log *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("ошибка запуска наблюдения: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ошибка наблюдения за каталогом: %w", err)
	}

	last := initial
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isEditEvent(ev, path) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				log.Warn("read edited file", slog.String("error", err.Error()))
				continue
			}
			if content := string(data); content != last {
				last = content
				onEdit(content)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("file watcher", slog.String("error", err.Error()))
		}
	}
}

func isEditEvent(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}

// statusPrinter печатает статус автосохранения, только когда он меняется.
type statusPrinter struct {
	mu   sync.Mutex
	last string
}

func (p *statusPrinter) print(v editor.View) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v.Status == "" || v.Status == p.last {
		return
	}
	p.last = v.Status
	statusColor(v.Status).Println(v.Status)
}

func statusColor(status string) *color.Color {
	switch {
	case strings.HasPrefix(status, "Error"):
		return color.New(color.FgRed)
	case strings.HasPrefix(status, "Saved"):
		return color.New(color.FgGreen)
	case strings.HasPrefix(status, "Typing"), strings.HasPrefix(status, "Saving"):
		return color.New(color.FgYellow)
	}
	return color.New(color.Faint)
}

func init() {
	EditCmd.Flags().StringVarP(&editFile, "file", "f", "", "файл для редактирования (по умолчанию в каталоге настроек)")
	EditCmd.Flags().BoolVarP(&showPreview, "preview", "p", false, "печатать предпросмотр после каждой правки")
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"notive/cmd/client/cmd/auth"
	"notive/cmd/client/cmd/entry"
	"notive/cmd/client/cmd/types"
	"notive/cmd/client/cmd/widget"
	"notive/internal/app/client"
	"notive/internal/app/client/config"
	serverConfig "notive/internal/app/server/config"
	"notive/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	debug     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "notive",
	Short: "Notive - клиент цифрового дневника",
	Long: `Notive - клиент дневника: одна markdown-запись на каждый день.

Записи хранятся на сервере, редактор сохраняет их автоматически через
секунду после последней правки. Задачи, заметки и цели хранятся локально.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	// Без --debug логи идут в JSON без отладочных сообщений
	env := serverConfig.EnvProd
	if debug {
		env = serverConfig.EnvLocal
	}
	log = logger.New(env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, types.ClientAppKey, app))

	return nil
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	// Глобальные флаги
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "адрес сервера Notive (host:port)")

	rootCmd.AddCommand(auth.LoginCmd, auth.LogoutCmd)

	rootCmd.AddCommand(entry.EntryCmd)
	entry.EntryCmd.AddCommand(entry.GetCmd, entry.SaveCmd, entry.ListCmd, entry.EditCmd)

	rootCmd.AddCommand(widget.TaskCmd, widget.NoteCmd, widget.GoalCmd)
}

package auth

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notive/cmd/client/cmd/types"
)

var LoginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Получить токен сессии",
	Long: `Запрашивает у сервера токен для имени пользователя и сохраняет его
локально. Нужен, если сервер запущен с AUTH_MODE=legacy или jwt.

Пароль не используется: имя только выбирает, чьи записи читать и писать.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		var username string
		if len(args) == 1 {
			username = args[0]
		} else {
			fmt.Print("Имя пользователя: ")
			line, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("ошибка чтения имени: %w", err)
			}
			username = line
		}

		username = strings.TrimSpace(username)
		if username == "" {
			return fmt.Errorf("имя пользователя не может быть пустым")
		}

		if err := app.Login(cmd.Context(), username); err != nil {
			return err
		}

		color.Green("✓ Вход выполнен: %s", username)
		return nil
	},
}

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Удалить сохраненный токен",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		if err := app.ClearToken(); err != nil {
			return err
		}

		fmt.Println("Токен удален")
		return nil
	},
}

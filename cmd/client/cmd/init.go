package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Проверить настройку клиента Notive",
	Long: `Команда init проверяет, что клиент готов к работе:
	1. Каталог настроек и локальное хранилище виджетов
	2. Соединение с сервером
	3. Наличие сохраненного токена сессии

Если сервер запущен без авторизации, токен не нужен.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Println("=== Notive ===")
		fmt.Println()

		fmt.Printf("Каталог настроек: %s\n", cfg.ConfigDir)
		fmt.Printf("Хранилище виджетов: %s\n", cfg.DataPath)
		fmt.Printf("Сервер: %s\n", cfg.BaseURL())
		fmt.Println()

		fmt.Println("Проверка соединения с сервером...")
		if err := app.CheckConnection(cmd.Context()); err != nil {
			color.Yellow("⚠️  Не удалось подключиться к серверу: %v", err)
			fmt.Println("Задачи, заметки и цели доступны и без сервера.")
		} else {
			color.Green("✓ Соединение с сервером установлено")
		}

		if _, err := app.GetToken(); err != nil {
			fmt.Println("Токен сессии не сохранен. Если сервер требует вход: notive login <имя>")
		} else {
			color.Green("✓ Токен сессии сохранен")
		}

		fmt.Println()
		fmt.Println("Что дальше:")
		fmt.Println("1. Открыть запись за сегодня: notive entry edit")
		fmt.Println("2. Посмотреть записи: notive entry list")
		fmt.Println("3. Добавить задачу: notive task add <текст>")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

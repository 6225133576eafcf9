package entry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"notive/cmd/client/cmd/types"
	"notive/internal/domain/entry"
	"notive/internal/render"
)

var (
	rawOutput  bool
	jsonOutput bool
	inputFile  string
)

// EntryCmd - родительская команда для работы с записями дневника
var EntryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Записи дневника",
	Long: `Чтение, сохранение и редактирование записей дневника.

Дата указывается как YYYY-MM-DD или словами today, yesterday, tomorrow.
Без даты используется сегодняшний день.`,
}

var GetCmd = &cobra.Command{
	Use:   "get [date]",
	Short: "Показать запись за дату",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		dateKey, err := ResolveDate(args, time.Now())
		if err != nil {
			return err
		}

		e, err := app.API().GetEntry(cmd.Context(), dateKey)
		if err != nil {
			return fmt.Errorf("ошибка получения записи: %w", err)
		}

		if rawOutput {
			fmt.Print(e.Content)
			return nil
		}

		color.New(color.Bold).Println(dateKey)
		if e.LastModified != nil {
			color.New(color.Faint).Printf("Изменена: %s\n", e.LastModified.Local().Format("2006-01-02 15:04"))
		}
		if e.Content == "" {
			color.New(color.Faint).Println("(пусто)")
			return nil
		}

		fmt.Print(render.Terminal(e.Content, TerminalWidth()))
		return nil
	},
}

var SaveCmd = &cobra.Command{
	Use:   "save [date]",
	Short: "Сохранить запись из файла или stdin",
	Long: `Полностью перезаписывает запись за дату текстом из --file
или из стандартного ввода.`,
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

		var content []byte
		if inputFile != "" {
			content, err = os.ReadFile(inputFile)
		} else {
			content, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("ошибка чтения текста: %w", err)
		}

		if err := app.API().SaveEntry(cmd.Context(), dateKey, string(content)); err != nil {
			return fmt.Errorf("ошибка сохранения записи: %w", err)
		}

		color.Green("✓ Запись за %s сохранена", dateKey)
		return nil
	},
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Даты, за которые есть записи",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.App(cmd)
		if err != nil {
			return err
		}

		keys, err := app.API().ListEntries(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка: %w", err)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string][]string{"entries": keys})
		}

		if len(keys) == 0 {
			fmt.Println("Записей пока нет")
			return nil
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		return nil
	},
}

// ResolveDate превращает аргумент команды в ключ даты.
func ResolveDate(args []string, now time.Time) (string, error) {
	arg := "today"
	if len(args) > 0 {
		arg = strings.TrimSpace(args[0])
	}

	switch strings.ToLower(arg) {
	case "", "today":
		return entry.FormatDateKey(now), nil
	case "yesterday":
		return entry.FormatDateKey(now.AddDate(0, 0, -1)), nil
	case "tomorrow":
		return entry.FormatDateKey(now.AddDate(0, 0, 1)), nil
	}

	if err := entry.ValidateDateKey(arg, false); err != nil {
		return "", fmt.Errorf("некорректная дата %q", arg)
	}
	return arg, nil
}

// TerminalWidth возвращает ширину stdout или 80, если это не терминал.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

func init() {
	GetCmd.Flags().BoolVar(&rawOutput, "raw", false, "вывести markdown без форматирования")
	SaveCmd.Flags().StringVarP(&inputFile, "file", "f", "", "файл с текстом записи")
	ListCmd.Flags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
}

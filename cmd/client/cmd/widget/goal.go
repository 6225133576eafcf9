package widget

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notive/cmd/client/cmd/types"
	"notive/internal/app/client/widget"
)

var (
	goalDue  string
	goalDesc string
)

var GoalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Цели и прогресс",
	Long:  `Локальные цели с прогрессом от 0 до 100%.`,
}

var goalAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Добавить цель",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var due time.Time
		if goalDue != "" {
			var err error
			due, err = time.ParseInLocation("2006-01-02", goalDue, time.Local)
			if err != nil {
				return fmt.Errorf("некорректная дата %q, ожидается YYYY-MM-DD", goalDue)
			}
		}

		goals, err := loadGoals(cmd)
		if err != nil {
			return err
		}

		goal, err := goals.Add(args[0], goalDesc, due)
		if err != nil {
			return fmt.Errorf("ошибка добавления цели: %w", err)
		}
		if err := goals.Save(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка сохранения целей: %w", err)
		}

		color.Green("✓ Цель добавлена: %s", goal.Title)
		return nil
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать цели",
	RunE: func(cmd *cobra.Command, _ []string) error {
		goals, err := loadGoals(cmd)
		if err != nil {
			return err
		}

		fmt.Print(widget.RenderGoals(goals.Items()))
		return nil
	},
}

var goalProgressCmd = &cobra.Command{
	Use:   "progress <n> <percent>",
	Short: "Установить прогресс цели",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := ParseIndex(args[0])
		if err != nil {
			return err
		}
		p, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("прогресс должен быть числом: %q", args[1])
		}

		goals, err := loadGoals(cmd)
		if err != nil {
			return err
		}

		goal, err := goals.SetProgress(i, p)
		if err != nil {
			return err
		}
		if err := goals.Save(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка сохранения целей: %w", err)
		}

		fmt.Printf("%s %s %d%%\n", goal.Title, widget.ProgressBar(goal.Progress), goal.Progress)
		return nil
	},
}

var goalRmCmd = &cobra.Command{
	Use:   "rm <n>",
	Short: "Удалить цель",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := ParseIndex(args[0])
		if err != nil {
			return err
		}

		goals, err := loadGoals(cmd)
		if err != nil {
			return err
		}

		if err := goals.Remove(i); err != nil {
			return err
		}
		if err := goals.Save(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка сохранения целей: %w", err)
		}

		color.Green("✓ Цель удалена")
		return nil
	},
}

// ParseIndex переводит номер из вывода list (с единицы) в индекс списка.
func ParseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("некорректный номер %q", s)
	}
	return n - 1, nil
}

func loadGoals(cmd *cobra.Command) (*widget.Goals, error) {
	app, err := types.App(cmd)
	if err != nil {
		return nil, err
	}

	goals, err := app.Goals(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки целей: %w", err)
	}
	return goals, nil
}

func init() {
	goalAddCmd.Flags().StringVar(&goalDue, "due", "", "срок в формате YYYY-MM-DD")
	goalAddCmd.Flags().StringVar(&goalDesc, "desc", "", "описание цели")

	GoalCmd.AddCommand(goalAddCmd, goalListCmd, goalProgressCmd, goalRmCmd)
}

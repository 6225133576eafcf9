package widget

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notive/cmd/client/cmd/types"
	"notive/internal/app/client/widget"
)

var taskFilter string

// TaskCmd - список задач
var TaskCmd = &cobra.Command{
	Use:   "task",
	Short: "Список задач",
	Long:  `Локальный список задач. Задачи хранятся на этом устройстве и на сервер не отправляются.`,
}

var taskAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Добавить задачу",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := loadTasks(cmd)
		if err != nil {
			return err
		}

		task, err := tasks.Add(strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("ошибка добавления задачи: %w", err)
		}
		if err := tasks.Save(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка сохранения задач: %w", err)
		}

		color.Green("✓ Задача добавлена: %s", task.Text)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать задачи",
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := widget.ParseFilter(taskFilter)
		if err != nil {
			return err
		}

		tasks, err := loadTasks(cmd)
		if err != nil {
			return err
		}

		fmt.Print(widget.RenderTasks(tasks.Filter(filter)))
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Отметить задачу выполненной (или снять отметку)",
	Long:  `Переключает отметку о выполнении. Достаточно начала ID, если оно однозначно.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := loadTasks(cmd)
		if err != nil {
			return err
		}

		task, err := tasks.Toggle(args[0])
		if err != nil {
			return err
		}
		if err := tasks.Save(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка сохранения задач: %w", err)
		}

		if task.Completed {
			color.Green("✓ Выполнено: %s", task.Text)
		} else {
			color.Yellow("○ Снова в работе: %s", task.Text)
		}
		return nil
	},
}

var taskRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Удалить задачу",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := loadTasks(cmd)
		if err != nil {
			return err
		}

		if err := tasks.Remove(args[0]); err != nil {
			return err
		}
		if err := tasks.Save(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка сохранения задач: %w", err)
		}

		color.Green("✓ Задача удалена")
		return nil
	},
}

func loadTasks(cmd *cobra.Command) (*widget.Tasks, error) {
	app, err := types.App(cmd)
	if err != nil {
		return nil, err
	}

	tasks, err := app.Tasks(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки задач: %w", err)
	}
	return tasks, nil
}

func init() {
	taskListCmd.Flags().StringVar(&taskFilter, "filter", "all", "фильтр: all, active, completed")

	TaskCmd.AddCommand(taskAddCmd, taskListCmd, taskDoneCmd, taskRmCmd)
}

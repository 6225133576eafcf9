package widget

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"notive/cmd/client/cmd/types"
	"notive/internal/app/client/widget"
)

var noteContent string

var NoteCmd = &cobra.Command{
	Use:   "note",
	Short: "Быстрые заметки",
	Long:  `Локальные заметки. Номер заметки - её позиция в списке note list.`,
}

var noteAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Добавить заметку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, err := loadNotes(cmd)
		if err != nil {
			return err
		}

		note, err := notes.Add(args[0], noteContent)
		if err != nil {
			return fmt.Errorf("ошибка добавления заметки: %w", err)
		}
		if err := notes.Save(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка сохранения заметок: %w", err)
		}

		color.Green("✓ Заметка добавлена: %s", note.Title)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать заметки",
	RunE: func(cmd *cobra.Command, _ []string) error {
		notes, err := loadNotes(cmd)
		if err != nil {
			return err
		}

		fmt.Print(widget.RenderNotes(notes.Items()))
		return nil
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <n> <title>",
	Short: "Изменить заметку",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := ParseIndex(args[0])
		if err != nil {
			return err
		}

		notes, err := loadNotes(cmd)
		if err != nil {
			return err
		}

		if _, err := notes.Update(i, args[1], noteContent); err != nil {
			return fmt.Errorf("ошибка изменения заметки: %w", err)
		}
		if err := notes.Save(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка сохранения заметок: %w", err)
		}

		color.Green("✓ Заметка обновлена")
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <n>",
	Short: "Удалить заметку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		i, err := ParseIndex(args[0])
		if err != nil {
			return err
		}

		notes, err := loadNotes(cmd)
		if err != nil {
			return err
		}

		if err := notes.Remove(i); err != nil {
			return err
		}
		if err := notes.Save(cmd.Context()); err != nil {
			return fmt.Errorf("ошибка сохранения заметок: %w", err)
		}

		color.Green("✓ Заметка удалена")
		return nil
	},
}

func loadNotes(cmd *cobra.Command) (*widget.Notes, error) {
	app, err := types.App(cmd)
	if err != nil {
		return nil, err
	}

	notes, err := app.Notes(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки заметок: %w", err)
	}
	return notes, nil
}

func init() {
	noteAddCmd.Flags().StringVarP(&noteContent, "content", "c", "", "текст заметки")
	noteEditCmd.Flags().StringVarP(&noteContent, "content", "c", "", "текст заметки")

	NoteCmd.AddCommand(noteAddCmd, noteListCmd, noteEditCmd, noteRmCmd)
}

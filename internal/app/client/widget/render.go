package widget

import (
	"fmt"
	"strings"
)

const (
	barWidth = 20
	idWidth  = 13
)

func RenderTasks(tasks []Task) string {
	if len(tasks) == 0 {
		return "No tasks.\n"
	}

	var b strings.Builder
	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(&b, "[%s] %s  (%s)\n", mark, t.Text, shortID(t.ID))
	}
	return b.String()
}

func RenderNotes(notes []Note) string {
	if len(notes) == 0 {
		return "No notes.\n"
	}

	var b strings.Builder
	for i, n := range notes {
		fmt.Fprintf(&b, "%d. %s  %s\n", i+1, n.Title, n.Date)
		if n.Content != "" {
			for _, line := range strings.Split(n.Content, "\n") {
				fmt.Fprintf(&b, "   %s\n", line)
			}
		}
	}
	return b.String()
}

func RenderGoals(goals []Goal) string {
	if len(goals) == 0 {
		return "No goals.\n"
	}

	var b strings.Builder
	for i, g := range goals {
		fmt.Fprintf(&b, "%d. %s %s %3d%%\n", i+1, g.Title, ProgressBar(g.Progress), g.Progress)
		fmt.Fprintf(&b, "   %s\n", g.Description)
		if g.DueDate != "" {
			fmt.Fprintf(&b, "   Due: %s\n", g.DueDate)
		}
	}
	return b.String()
}

func ProgressBar(p int) string {
	filled := ClampProgress(p) * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled) + "]"
}

func shortID(id string) string {
	if len(id) <= idWidth {
		return id
	}
	return id[:idWidth]
}

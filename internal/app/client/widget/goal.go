package widget

import (
	"strings"
	"time"
)

const (
	ColorLow    = "#e74c3c"
	ColorMedium = "#f39c12"
	ColorHigh   = "#27ae60"

	noDescription = "No description provided."
)

type Goal struct {
	Title       string `json:"title"`
	Progress    int    `json:"progress"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Color       string `json:"color"`
}

type Goals struct {
	*List[Goal]
}

func NewGoals(kv KV) *Goals {
	return &Goals{List: NewList[Goal](kv, GoalsKey)}
}

func (g *Goals) Add(title, description string, due time.Time) (Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Goal{}, ErrEmpty
	}
	if strings.TrimSpace(description) == "" {
		description = noDescription
	}

	goal := Goal{
		Title:       title,
		Description: description,
		Color:       ProgressColor(0),
	}
	if !due.IsZero() {
		goal.DueDate = due.Format(displayDate)
	}
	g.append(goal)

	return goal, nil
}

// SetProgress clamps p to 0..100 and recolours the bar.
func (g *Goals) SetProgress(i, p int) (Goal, error) {
	goal, err := g.at(i)
	if err != nil {
		return Goal{}, err
	}
	goal.Progress = ClampProgress(p)
	goal.Color = ProgressColor(goal.Progress)

	return *goal, nil
}

func (g *Goals) Remove(i int) error {
	return g.remove(i)
}

func ClampProgress(p int) int {
	return max(0, min(100, p))
}

func ProgressColor(p int) string {
	switch {
	case p < 30:
		return ColorLow
	case p < 70:
		return ColorMedium
	}
	return ColorHigh
}

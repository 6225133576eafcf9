package widget

import (
	"strings"
	"time"
)

const displayDate = "January 2, 2006"

type Note struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

type Notes struct {
	*List[Note]
	now func() time.Time
}

func NewNotes(kv KV) *Notes {
	return &Notes{
		List: NewList[Note](kv, NotesKey),
		now:  time.Now,
	}
}

func (n *Notes) Add(title, content string) (Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Note{}, ErrEmpty
	}

	note := Note{Title: title, Content: content, Date: n.now().Format(displayDate)}
	n.append(note)

	return note, nil
}

// Update rewrites note i (zero-based); the creation date is kept.
func (n *Notes) Update(i int, title, content string) (Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Note{}, ErrEmpty
	}

	note, err := n.at(i)
	if err != nil {
		return Note{}, err
	}
	note.Title = title
	note.Content = content

	return *note, nil
}

func (n *Notes) Remove(i int) error {
	return n.remove(i)
}

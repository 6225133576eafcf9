package entry

import "time"

// AnonymousOwner владеет записями, когда проверка сессии отключена.
const AnonymousOwner = "anonymous"

// Entry is the markdown text written for one calendar day by one owner.
type Entry struct {
	Owner        string    `json:"-"`
	DateKey      string    `json:"date_key"`
	Content      string    `json:"content"`
	LastModified time.Time `json:"last_modified,omitempty"`
}

// IsEmpty reports whether nothing has been stored for the key yet.
func (e Entry) IsEmpty() bool {
	return e.Content == "" && e.LastModified.IsZero()
}

package entry

import "time"

type dateKeyInput struct {
	DateKey string `path:"dateKey" example:"2024-03-15" doc:"Ключ даты записи, обычно YYYY-MM-DD"`
}

type readOutput struct {
	Body readResponse
}

type readResponse struct {
	Content      string     `json:"content" doc:"Markdown-текст записи, пустой если записи нет"`
	LastModified *time.Time `json:"lastModified,omitempty" doc:"Время последнего сохранения"`
}

type writeInput struct {
	DateKey string `path:"dateKey" example:"2024-03-15" doc:"Ключ даты записи, обычно YYYY-MM-DD"`
	Body    writeRequest `required:"false"`
}

// Content is a pointer so an absent field is told apart from an empty entry.
type writeRequest struct {
	Content *string `json:"content,omitempty" doc:"Новый текст записи"`
}

type writeOutput struct {
	Body writeResponse
}

type writeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Entries []string `json:"entries" doc:"Ключи дат с записями, новые первыми"`
}

package entry

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) readOp() huma.Operation {
	return huma.Operation{
		OperationID: "entry-read",
		Method:      http.MethodGet,
		Path:        "/api/entry/{dateKey}",
		Summary:     "Получить запись за дату",
		Description: "Возвращает пустой текст, если запись за дату еще не создана.",
		Tags:        []string{"entries"},
		Security:    h.security,
		Middlewares: h.middleware,
	}
}

func (h *Handler) writeOp() huma.Operation {
	return huma.Operation{
		OperationID: "entry-write",
		Method:      http.MethodPost,
		Path:        "/api/entry/{dateKey}",
		Summary:     "Сохранить запись за дату",
		Description: "Полностью перезаписывает текст записи.",
		Tags:        []string{"entries"},
		Security:    h.security,
		Middlewares: h.middleware,
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}
}

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "entry-list",
		Method:      http.MethodGet,
		Path:        "/api/entries",
		Summary:     "Список дат с записями",
		Tags:        []string{"entries"},
		Security:    h.security,
		Middlewares: h.middleware,
	}
}

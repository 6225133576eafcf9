package session

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID: "session-create",
		Method:      http.MethodPost,
		Path:        "/api/session",
		Summary:     "Получить токен сессии",
		Description: "Выдает токен для имени пользователя. Пароли не проверяются.",
		Tags:        []string{"session"},
		Middlewares: h.middleware,
		Errors:      []int{http.StatusBadRequest},
	}
}

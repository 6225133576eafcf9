package preview

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) renderOp() huma.Operation {
	return huma.Operation{
		OperationID: "preview-render",
		Method:      http.MethodPost,
		Path:        "/api/preview",
		Summary:     "Отрендерить markdown в HTML",
		Tags:        []string{"preview"},
		Middlewares: h.middleware,
	}
}

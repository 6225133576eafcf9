package preview

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notive/internal/render"
)

func TestHandler_Render(t *testing.T) {
	_, api := humatest.New(t)
	NewHandler(render.NewHTMLRenderer(), slog.Default(), nil).SetupRoutes(api)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "heading", content: "# Hi", want: "Hi</h1>"},
		{name: "empty", content: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := api.Post("/api/preview", map[string]any{"content": tt.content})
			require.Equal(t, http.StatusOK, resp.Code)

			var body renderResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			if tt.want == "" {
				assert.Empty(t, body.HTML)
				return
			}
			assert.Contains(t, body.HTML, tt.want)
		})
	}
}

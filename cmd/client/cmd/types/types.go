package types

import (
	"fmt"

	"github.com/spf13/cobra"

	"notive/internal/app/client"
)

type contextKey string

const ClientAppKey contextKey = "app"

// App достает клиентское приложение, созданное в PersistentPreRunE.
func App(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

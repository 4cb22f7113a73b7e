package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restful/internal/output"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the models and endpoints in the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			_, client, err := s.newClient()
			if err != nil {
				return err
			}

			var routes []output.RouteInfo
			for _, model := range client.Models() {
				for _, name := range client.Endpoints(model) {
					route, err := client.Route(model, name)
					if err != nil {
						return err
					}
					routes = append(routes, output.RouteInfo{
						Model:    model,
						Endpoint: name,
						Method:   route.Method(),
						URL:      route.URL(),
					})
				}
			}

			text, err := s.formatter.FormatRoutes(routes)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

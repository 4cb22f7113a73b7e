package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restful/internal/output"
	"github.com/wesleyorama2/restful/pkg/jsonpath"
	"github.com/wesleyorama2/restful/restful"
)

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call MODEL ENDPOINT [key=value...]",
		Short: "Call an endpoint of a model",
		Long: `Call an endpoint by model and endpoint name. Arguments of the form
key=value are deep-merged over the endpoint's configured params; dotted
keys build nested values and JSON literals keep their type.`,
		Example: `  restful call users list limit=5
  restful call users search filter.name=ada --extract first='$.items[0].id'
  restful call users get id=42 --raw -o json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetBool("raw")
			extracts, _ := cmd.Flags().GetStringArray("extract")
			checkSchema, _ := cmd.Flags().GetBool("check-schema")

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			params, err := parseParams(args[2:])
			if err != nil {
				return err
			}
			paths, err := parseExtracts(extracts)
			if err != nil {
				return err
			}

			var options []restful.Option
			if raw {
				options = append(options, restful.WithCleanResponse(false))
			}
			col, client, err := s.newClient(options...)
			if err != nil {
				return err
			}

			model, endpoint := args[0], args[1]
			route, err := client.Route(model, endpoint)
			if err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			resp, err := route.Request(cmd.Context(), params)
			if err != nil {
				fmt.Fprint(errOut, s.formatter.FormatError(err))
				return errReported
			}

			failed := false
			var extracted map[string]string
			if len(paths) > 0 {
				extracted, err = jsonpath.ExtractAll(resp.Data, paths)
				if err != nil {
					fmt.Fprint(errOut, s.formatter.FormatCheck("extract", err))
					failed = true
				}
			}

			// Structured output with --extract prints only the extracted values.
			if s.formatter.Format != output.FormatText && len(paths) > 0 {
				text, err := s.formatter.FormatExtracted(extracted)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
			} else {
				text, err := s.formatter.FormatResponse(resp)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
				if len(extracted) > 0 {
					text, _ = s.formatter.FormatExtracted(extracted)
					fmt.Fprint(out, text)
				}
			}

			if checkSchema {
				schema, err := col.Schema(model, endpoint)
				switch {
				case err != nil:
					fmt.Fprint(errOut, s.formatter.FormatCheck("schema", err))
					failed = true
				case schema == nil:
					fmt.Fprintf(errOut, "  %s no schema for %s.%s\n", output.InfoIcon(s.noColor), model, endpoint)
				default:
					name := "schema " + schema.Name()
					if errs := schema.Validate(resp.Data); errs != nil {
						fmt.Fprint(errOut, s.formatter.FormatCheck(name, errs))
						failed = true
					} else {
						fmt.Fprint(errOut, s.formatter.FormatCheck(name, nil))
					}
				}
			}

			if failed {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().Bool("raw", false, "Keep headers, request and timing in the response")
	cmd.Flags().StringArrayP("extract", "x", []string{}, "Extract a value with name=$.path (can be used multiple times)")
	cmd.Flags().Bool("check-schema", false, "Validate the response data against the endpoint's schema")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restful/internal/bench"
	"github.com/wesleyorama2/restful/internal/output"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench MODEL ENDPOINT [key=value...]",
		Short: "Call an endpoint repeatedly and report latency percentiles",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, _ := cmd.Flags().GetInt("requests")
			concurrency, _ := cmd.Flags().GetInt("concurrency")

			if requests < 1 {
				return fmt.Errorf("requests must be at least 1")
			}
			if concurrency < 1 {
				return fmt.Errorf("concurrency must be at least 1")
			}

			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			params, err := parseParams(args[2:])
			if err != nil {
				return err
			}

			_, client, err := s.newClient()
			if err != nil {
				return err
			}

			route, err := client.Route(args[0], args[1])
			if err != nil {
				return err
			}

			summary, err := bench.Run(cmd.Context(), route, bench.Options{
				Requests:    requests,
				Concurrency: concurrency,
				Params:      params,
				Logger:      s.logger,
			})
			if err != nil {
				return err
			}

			if concurrency > requests {
				concurrency = requests
			}
			text, err := s.formatter.FormatBench(output.BenchReport{
				Model:       args[0],
				Endpoint:    args[1],
				Concurrency: concurrency,
				Summary:     summary,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)

			if summary.Failures > 0 {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().IntP("requests", "n", 10, "Total number of calls")
	cmd.Flags().IntP("concurrency", "c", 1, "Number of concurrent workers")

	return cmd
}

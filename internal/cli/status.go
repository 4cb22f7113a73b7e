package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restful/status"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [CODE...]",
		Short: "Describe HTTP status codes",
		Long: `Print the status descriptor built for each code: its definition and
which of the isOk, isCreated, isBadRequest, isForbidden, isNotFound and
isServerError flags are set. Without arguments every known code is listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			codes := status.Codes()
			if len(args) > 0 {
				codes = make([]int, 0, len(args))
				for _, arg := range args {
					code, err := strconv.Atoi(arg)
					if err != nil {
						return fmt.Errorf("invalid status code: %s", arg)
					}
					codes = append(codes, code)
				}
			}

			descriptors := make([]status.Descriptor, 0, len(codes))
			for _, code := range codes {
				descriptors = append(descriptors, status.Describe(code))
			}

			text, err := s.formatter.FormatStatuses(descriptors)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

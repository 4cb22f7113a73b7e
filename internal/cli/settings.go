package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/restful/config"
	"github.com/wesleyorama2/restful/internal/logging"
	"github.com/wesleyorama2/restful/internal/output"
	"github.com/wesleyorama2/restful/restful"
)

// settings are the resolved persistent flags shared by every command.
type settings struct {
	configPath string
	env        string
	verbose    bool
	noColor    bool

	formatter *output.Formatter
	logger    zerolog.Logger
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	configPath, _ := cmd.Flags().GetString("config")
	env, _ := cmd.Flags().GetString("env")
	format, _ := cmd.Flags().GetString("output")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")
	logLevel, _ := cmd.Flags().GetString("log-level")

	outputFormat, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}

	noColor = disableColor(noColor, cmd.OutOrStdout())

	return &settings{
		configPath: configPath,
		env:        env,
		verbose:    verbose,
		noColor:    noColor,
		formatter:  output.NewFormatter(outputFormat, verbose, noColor),
		logger: logging.New(logging.Config{
			Level:   logLevel,
			Format:  logging.FormatConsole,
			NoColor: noColor,
		}, cmd.ErrOrStderr()),
	}, nil
}

// disableColor only colors output written to a terminal.
func disableColor(forced bool, w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return output.NoColor(forced, f)
}

// loadCollection reads and validates the collection file.
func (s *settings) loadCollection() (*config.Collection, error) {
	col, err := config.Load(s.configPath)
	if err != nil {
		return nil, err
	}

	if errs := config.Validate(col); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, "  "+e.Error())
		}
		return nil, fmt.Errorf("invalid collection %s:\n%s", s.configPath, strings.Join(msgs, "\n"))
	}

	s.logger.Debug().Str("path", s.configPath).Int("models", len(col.Models)).Msg("collection loaded")
	return col, nil
}

// newClient loads the collection and builds a client for the selected
// environment.
func (s *settings) newClient(options ...restful.Option) (*config.Collection, *restful.Client, error) {
	col, err := s.loadCollection()
	if err != nil {
		return nil, nil, err
	}

	options = append([]restful.Option{restful.WithLogger(s.logger)}, options...)
	client, err := col.NewClient(s.env, options...)
	if err != nil {
		return nil, nil, err
	}
	return col, client, nil
}

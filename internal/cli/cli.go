package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/nodesim/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("nodesim", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
nodesim - Simulated data points built from a node file.

Usage:
  nodesim [options] [NODES_FILE]

Arguments:
  NODES_FILE
    Node configuration file (.json, .yaml, .yml or .hcl). Without one the
    host starts with no user defined nodes.

Options:
`)
		flagSet.PrintDefaults()
	}

	var nodesFile string
	flagSet.StringVar(&nodesFile, "nodesfilesim", "", "The file that contains the nodes, including simulation parameters, to create in the address space.")
	flagSet.StringVar(&nodesFile, "nfs", "", "Shorthand for -nodesfilesim.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and diagnostics server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	natsURLFlag := flagSet.String("nats-url", "", "NATS server URL. When set, every value change is published to NATS.")
	natsSubjectFlag := flagSet.String("nats-subject", "", "Subject prefix for published value changes (default \"nodesim.values\").")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	switch {
	case nodesFile != "" && flagSet.NArg() > 0:
		return nil, false, &ExitError{Code: 2, Message: "the node file was given both as a flag and as an argument"}
	case flagSet.NArg() > 1:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one node file, got %d", flagSet.NArg())}
	case flagSet.NArg() == 1:
		nodesFile = flagSet.Arg(0)
	}
	slog.Debug("Node file determined.", "path", nodesFile)

	config, err := app.NewConfig(app.Config{
		NodesFile:       nodesFile,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       strings.ToLower(*logFormatFlag),
		LogLevel:        strings.ToLower(*logLevelFlag),
		NATSURL:         *natsURLFlag,
		NATSSubject:     *natsSubjectFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

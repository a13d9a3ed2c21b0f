package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"tcalc/app/config"
	"tcalc/app/lang"
	"tcalc/app/mcpserver"
	"tcalc/app/repl"
	"tcalc/app/server"
)

var version = "dev"

const usage = "Usage: tcalc <expression>"

// Arguments that route to the command tree instead of being evaluated.
var commandArgs = []string{"serve", "mcp", "repl", "help", "h", "-h", "--help", "-v", "--version"}

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run executes tcalc and returns the process exit status. Unless the first
// argument names a subcommand, all arguments are joined into one expression
// so that values such as "2am -30m" are never mistaken for flags.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	if slices.Contains(commandArgs, args[1]) {
		if err := newCommand(stdin, stdout, stderr).Run(ctx, args); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	cfg, err := config.Resolve(os.Getenv(config.EnvConfigPath))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return evaluate(cfg.Evaluator(), strings.Join(args[1:], " "), stdout, stderr)
}

func evaluate(eval *lang.Evaluator, expr string, stdout, stderr io.Writer) int {
	out, err := eval.Evaluate(expr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, out)
	return 0
}

func newCommand(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to a YAML or TOML config file",
		Sources: cli.EnvVars(config.EnvConfigPath),
	}

	// loadConfig resolves the config file and a logger writing to stderr;
	// stdout belongs to the command's own output.
	loadConfig := func(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
		cfg, err := config.Resolve(cmd.String("config"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load config: %w", err)
		}
		logger := cfg.App.NewLogger(stderr)
		slog.SetDefault(logger)
		return cfg, logger, nil
	}

	return &cli.Command{
		Name:      "tcalc",
		Usage:     "Date and time arithmetic: tcalc 2025/09/27 + 2d",
		UsageText: "tcalc <expression>\ntcalc <command> [options]",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve the evaluator over HTTP",
				Flags: []cli.Flag{configFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, logger, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					if err := server.New(cfg, logger).Run(ctx); err != nil {
						return fmt.Errorf("server error: %w", err)
					}
					return nil
				},
			},
			{
				Name:  "mcp",
				Usage: "Serve the evaluator as an MCP tool over stdio",
				Flags: []cli.Flag{configFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, logger, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return mcpserver.New(cfg.Evaluator(), version, logger).ServeStdio()
				},
			},
			{
				Name:  "repl",
				Usage: "Evaluate expressions interactively",
				Flags: []cli.Flag{configFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, _, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					return repl.Run(cfg.Evaluator(), stdin, stdout)
				},
			},
		},
	}
}

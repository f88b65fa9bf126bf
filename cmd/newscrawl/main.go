package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newscrawl"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Collaborators for end-to-end testing. When nil, Run builds the
	// production implementations from configuration.
	Fetcher  newscrawl.Fetcher
	Renderer newscrawl.Renderer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newscrawl"),
		kong.Description("Harvest news articles, metadata and reader comments into a JSON document"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newscrawl --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", newscrawl.ErrorMessage(err))
		return err
	}

	command := kongCtx.Command()
	switch {
	case strings.HasPrefix(command, "prepare"):
		cli.Prepare.apply(cfg)
	case strings.HasPrefix(command, "harvest"):
		cli.Harvest.apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", newscrawl.ErrorMessage(err))
		return err
	}

	deps.Config = cfg
	deps.RunID = uuid.NewString()
	deps.Logger = newLogger(stderr, cli.Verbose).With("run", deps.RunID)

	if strings.HasPrefix(command, "harvest") {
		harvester, cleanup, err := m.newHarvester(cfg, deps.Logger)
		if err != nil {
			if newscrawl.ErrorCode(err) == newscrawl.ERENDER {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed to collect comments")
			}
			return fmt.Errorf("failed to start harvester: %w", err)
		}
		defer cleanup()

		deps.Harvester = harvester
		deps.Writer = newRecordWriter(cfg, deps.Logger)
	}

	return kongCtx.Run(deps)
}

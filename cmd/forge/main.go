package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"

	"github.com/medusa-ai/forge/internal/config"
	"github.com/medusa-ai/forge/internal/db"
	"github.com/medusa-ai/forge/internal/errors"
	"github.com/medusa-ai/forge/internal/genai"
	"github.com/medusa-ai/forge/internal/history"
	"github.com/medusa-ai/forge/internal/mcp"
	"github.com/medusa-ai/forge/internal/ops"
	"github.com/medusa-ai/forge/internal/prompt"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"enhance": true, "templates": true,
	"history": true, "clear": true,
	"share": true, "open": true,
	"serve": true, "help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode(args []string) bool {
	arg, ok := firstCommand(args)
	if !ok {
		return false // No args → MCP server
	}
	if cliCommands[arg] {
		return true
	}
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v"
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion(args []string) bool {
	arg, ok := firstCommand(args)
	if !ok {
		return false
	}
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// firstCommand returns the first argument that is not the --ephemeral flag.
func firstCommand(args []string) (string, bool) {
	for _, arg := range args[1:] {
		if arg != "--ephemeral" {
			return arg, true
		}
	}
	return "", false
}

// isEphemeral reports whether history should live in memory only.
func isEphemeral(args []string) bool {
	return slices.Contains(args[1:], "--ephemeral")
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ___  ___   ___   ___  ___
  | __|/ _ \ | _ \ / __|| __|
  | _|| (_) ||   /| (_ || _|
  |_|  \___/ |_|_\ \___||___|

  Turn a rough idea into a detailed generation prompt

  Usage: forge <command> [options]
         forge --help

  MCP server mode requires piped input.`)
}

// unconfiguredGenerator stands in when no provider can be built, so that
// read-only commands keep working and generation fails with the usual message.
type unconfiguredGenerator struct {
	cause error
}

func (g unconfiguredGenerator) Generate(context.Context, prompt.Payload) (string, error) {
	log.Printf("genai: provider unavailable: %v", g.cause)
	return "", errors.NewBackendFailure(genai.FailureMessage)
}

// newGenerator builds the generation client from cfg.
func newGenerator(cfg *config.Config) genai.Generator {
	provider, err := genai.NewProvider(cfg)
	if err != nil {
		return unconfiguredGenerator{cause: err}
	}
	return genai.NewClient(provider, cfg)
}

// openHistory opens the history store on the database, or in memory when ephemeral.
func openHistory(database *sql.DB, cfg *config.Config, ephemeral bool) (*history.Store, error) {
	var backend history.Backend = db.KV{DB: database}
	if ephemeral {
		backend = history.NewMemoryBackend()
	}
	return history.Open(context.Background(), backend, history.WithCapacity(cfg.HistoryCapacity))
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before DB init (no DB needed)
	if isHelpOrVersion(os.Args) {
		app := newCLIApp(ops.Deps{}, config.DefaultConfig())
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".forge")

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Init(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()
	db.ConfigurePool(database, cfg)

	store, err := openHistory(database, cfg, isEphemeral(os.Args))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load history: %v\n", err)
		os.Exit(1)
	}

	deps := ops.Deps{
		Generator: newGenerator(cfg),
		History:   store,
	}

	// CLI mode: known subcommand
	if isCLIMode(os.Args) {
		app := newCLIApp(deps, cfg)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'forge --help' for usage.\n")
		os.Exit(1)
	}

	for _, name := range mcp.ValidateDisabledTools(cfg.DisabledTools) {
		log.Printf("config: unknown disabled tool %q", name)
	}
	for _, name := range mcp.ValidateDisabledTypes(cfg.DisabledTypes) {
		log.Printf("config: unknown disabled type %q", name)
	}

	// MCP server mode (default)
	if err := mcp.Run(deps, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

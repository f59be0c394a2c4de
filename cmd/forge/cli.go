package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/urfave/cli/v2"

	"github.com/medusa-ai/forge/internal/config"
	"github.com/medusa-ai/forge/internal/errors"
	"github.com/medusa-ai/forge/internal/ops"
	"github.com/medusa-ai/forge/internal/prompt"
	"github.com/medusa-ai/forge/internal/share"
	"github.com/medusa-ai/forge/internal/web"
)

// maxStdinBytes bounds an idea or token read from stdin.
const maxStdinBytes = 1 << 20

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// newCLIApp creates the CLI application with all commands.
func newCLIApp(deps ops.Deps, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "forge",
		Usage:   "Turn a rough idea into a detailed generation prompt",
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "ephemeral", Usage: "Keep history in memory only for this run"},
		},
		Commands: []*cli.Command{
			enhanceCmd(deps),
			templatesCmd(),
			historyCmd(deps),
			clearCmd(deps),
			shareCmd(cfg),
			openCmd(),
			serveCmd(deps, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// enhanceCmd creates the enhance command.
func enhanceCmd(deps ops.Deps) *cli.Command {
	return &cli.Command{
		Name:      "enhance",
		Usage:     "Expand an idea into a prompt (idea from args or stdin)",
		ArgsUsage: "[idea...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "tool", Aliases: []string{"t"}, Value: string(prompt.ToolImage), Usage: "Target tool: Image|Video|Website"},
			&cli.StringFlag{Name: "style", Aliases: []string{"s"}, Usage: "Visual style (Image and Video)"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Website category (Website)"},
			&cli.BoolFlag{Name: "copy", Usage: "Copy the generated prompt to the clipboard"},
		},
		Action: func(c *cli.Context) error {
			idea := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(idea) == "" && stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				idea = text
			}

			tool, err := prompt.ParseTool(c.String("tool"))
			if err != nil {
				return outputError(err)
			}
			opts, err := prompt.ParseOptions(tool, c.String("style"), c.String("category"))
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Enhance(c.Context, deps, ops.EnhanceInput{
				Idea:    idea,
				Tool:    tool,
				Options: opts,
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("copy") {
				copyToClipboard(c.App.ErrWriter, output.Prompt)
			}
			return outputJSON(output)
		},
	}
}

// templatesCmd creates the templates command.
func templatesCmd() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List tools, styles, and website categories",
		Action: func(_ *cli.Context) error {
			return outputJSON(ops.Templates())
		},
	}
}

// historyCmd creates the history command.
func historyCmd(deps ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List past generations, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			return outputJSON(ops.ListHistory(deps.History, ops.ListHistoryInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			}))
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(deps ops.Deps) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete the entire prompt history",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Confirm the deletion; it cannot be undone"},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return outputError(errors.NewInvalidRequest("clearing history cannot be undone; pass --yes to confirm"))
			}
			output, err := ops.ClearHistory(c.Context, deps.History)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// shareCmd creates the share command.
func shareCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "share",
		Usage: "Build a share link for a generated prompt",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "idea", Aliases: []string{"i"}, Required: true, Usage: "Original idea"},
			&cli.StringFlag{Name: "prompt", Aliases: []string{"p"}, Usage: "Generated prompt (reads stdin when omitted)"},
			&cli.StringFlag{Name: "tool", Aliases: []string{"t"}, Value: string(prompt.ToolImage), Usage: "Target tool: Image|Video|Website"},
			&cli.StringFlag{Name: "style", Aliases: []string{"s"}, Usage: "Visual style"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Website category"},
			&cli.StringFlag{Name: "base-url", Usage: "Origin and path of the link (default: public_url from config)"},
			&cli.BoolFlag{Name: "copy", Usage: "Copy the link to the clipboard"},
		},
		Action: func(c *cli.Context) error {
			text := c.String("prompt")
			if text == "" && stdinHasData() {
				var err error
				if text, err = readStdin(); err != nil {
					return outputError(errors.NewInternal(err))
				}
			}

			base := c.String("base-url")
			if base == "" {
				base = cfg.ShareBaseURL()
			}

			output, err := ops.ShareLink(base, ops.ShareInput{
				Idea:     c.String("idea"),
				Prompt:   text,
				Tool:     c.String("tool"),
				Style:    c.String("style"),
				Category: c.String("category"),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("copy") {
				copyToClipboard(c.App.ErrWriter, output.URL)
			}
			return outputJSON(output)
		},
	}
}

// openCmd creates the open command.
func openCmd() *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Decode a share link or token",
		ArgsUsage: "<link|token>",
		Action: func(c *cli.Context) error {
			token := c.Args().First()
			if token == "" && stdinHasData() {
				var err error
				if token, err = readStdin(); err != nil {
					return outputError(errors.NewInternal(err))
				}
			}
			if token == "" {
				return outputError(errors.NewInvalidRequest("a share link or token is required"))
			}

			state, err := share.Decode(share.FromLink(token))
			if err != nil {
				return outputError(err)
			}
			return outputJSON(state)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(deps ops.Deps, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: cfg.Bind, Usage: "Listen address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: cfg.Port, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			// The browser surface keeps a single in-flight generation per process.
			deps.Session = &ops.Session{}
			srv := web.NewServer(deps, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if fErr := errors.As(err); fErr != nil {
		return cli.Exit(fmt.Sprintf("[%s] %s", fErr.Code, fErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// copyToClipboard writes text to the system clipboard. Failure is reported
// on w and never fails the command.
func copyToClipboard(w io.Writer, text string) {
	if err := writeClipboard(text); err != nil {
		fmt.Fprintf(w, "warning: not copied to clipboard: %v\n", err)
		return
	}
	fmt.Fprintln(w, "copied to clipboard")
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin, up to maxStdinBytes.
func readStdin() (string, error) {
	return readWithLimit(os.Stdin, maxStdinBytes)
}

// readWithLimit reads r and trims surrounding whitespace.
func readWithLimit(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("input exceeds %d bytes", limit)
	}
	return strings.TrimSpace(string(data)), nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/alkime/author/internal/config"
	"github.com/alkime/author/internal/keyring"
	"github.com/alkime/author/internal/llm"
	"github.com/alkime/author/internal/logger"
	"github.com/alkime/author/internal/roles"
	"github.com/alkime/author/internal/server"
	"github.com/alkime/author/internal/session"
	"github.com/alkime/author/internal/term"
	"github.com/alkime/author/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// CLI defines the author command structure.
type CLI struct {
	// Default TUI command (runs when no subcommand given)
	TUI TUICmd `cmd:"" default:"withargs" help:"Launch terminal UI for a drafting session"`

	// Subcommands
	Term   TermCmd   `cmd:"" help:"Run a plain line-based drafting session"`
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP session API and chat widget"`
	Config ConfigCmd `cmd:"" help:"Manage configuration"`
}

// generationFlags are the per-invocation overrides shared by the interactive
// commands. Anything left empty falls back to author.yaml / environment.
type generationFlags struct {
	Provider  string `flag:"" optional:"" help:"LLM provider: anthropic or openai"`
	Model     string `flag:"" optional:"" help:"Model name (provider default when empty)"`
	OutputDir string `flag:"" optional:"" help:"Directory for saved drafts"`
}

func (g generationFlags) apply(cfg *config.Config) {
	if g.Provider != "" {
		cfg.Provider = g.Provider
	}

	if g.Model != "" {
		cfg.Model = g.Model
	}

	if g.OutputDir != "" {
		cfg.OutputDir = g.OutputDir
	}
}

// buildController loads config, resolves credentials, and wires the creator
// and editor behind a fresh turn controller.
func buildController(flags generationFlags) (*session.Controller, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags.apply(cfg)
	resolveCredentials(cfg)

	// A missing key is reported here but only fails when a request is made,
	// so config subcommands and help stay usable without credentials.
	if cfg.APIKey() == "" {
		slog.Warn("No API key configured for provider; generation will fail",
			"provider", cfg.Provider,
			"hint", "set the environment variable or run 'author config set-key'",
		)
	}

	client, err := llm.New(llm.Provider(cfg.Provider), cfg.Model, cfg.APIKey())
	if err != nil {
		return nil, nil, err
	}

	creator := roles.NewCreator(client, cfg.CreatorTemperature)
	editor := roles.NewEditor(client, cfg.EditorTemperature)

	return session.New(creator, editor), cfg, nil
}

// resolveCredentials fills in API keys from the system keychain when the
// environment did not provide them.
func resolveCredentials(cfg *config.Config) {
	if cfg.AnthropicAPIKey == "" {
		if secret, err := keyring.Get(keyring.Anthropic); err == nil {
			cfg.AnthropicAPIKey = secret
		} else {
			slog.Debug("keychain lookup failed", "key", "anthropic", "error", err)
		}
	}

	if cfg.OpenAIAPIKey == "" {
		if secret, err := keyring.Get(keyring.OpenAI); err == nil {
			cfg.OpenAIAPIKey = secret
		} else {
			slog.Debug("keychain lookup failed", "key", "openai", "error", err)
		}
	}
}

// TUICmd is the default command that runs the TUI.
type TUICmd struct {
	generationFlags
}

// Run executes the TUI command.
func (c *TUICmd) Run() error {
	ctrl, cfg, err := buildController(c.generationFlags)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(tui.New(ctx, ctrl, cfg.OutputDir), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}

// TermCmd runs the plain line-based session on stdin/stdout.
type TermCmd struct {
	generationFlags
}

// Run executes the term command.
func (c *TermCmd) Run() error {
	ctrl, cfg, err := buildController(c.generationFlags)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl-C ends the session immediately; the scanner blocks on stdin so
	// a cancelled context alone would not unstick it.
	sigC := make(chan os.Signal, 1)
	signal.Notify(sigC, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigC
		fmt.Println("\nInterrupted. Goodbye!")
		os.Exit(0)
	}()

	return term.New(ctrl, os.Stdin, os.Stdout, cfg.OutputDir).Run(ctx)
}

// ServeCmd runs the HTTP server.
type ServeCmd struct {
	generationFlags
	Port string `flag:"" optional:"" help:"Listen port (overrides config)"`
}

// Run executes the serve command.
func (c *ServeCmd) Run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c.generationFlags.apply(cfg)
	resolveCredentials(cfg)

	if c.Port != "" {
		cfg.Port = c.Port
	}

	// Server output is JSON for log aggregation
	log := logger.Setup(cfg)
	slog.SetDefault(log)

	log.Info("Starting author server",
		"env", cfg.Env,
		"port", cfg.Port,
		"provider", cfg.Provider,
	)

	if cfg.APIKey() == "" {
		log.Warn("No API key configured for provider; generation will fail",
			"provider", cfg.Provider,
		)
	}

	client, err := llm.New(llm.Provider(cfg.Provider), cfg.Model, cfg.APIKey())
	if err != nil {
		return err
	}

	creator := roles.NewCreator(client, cfg.CreatorTemperature)
	editor := roles.NewEditor(client, cfg.EditorTemperature)

	return server.Run(server.New(cfg, log, creator, editor))
}

// ConfigCmd groups configuration-related subcommands.
type ConfigCmd struct {
	SetKey   SetKeyCmd   `cmd:"" help:"Store an API key in system keychain"`
	ListKeys ListKeysCmd `cmd:"" name:"list-keys" help:"Show which API keys are configured"`
}

// SetKeyCmd stores an API key in the system keychain.
type SetKeyCmd struct {
	Service string `arg:"" enum:"openai,anthropic" help:"Service name (openai or anthropic)"`
	Secret  string `arg:"" help:"API key value"`
}

// Run executes the set-key command.
func (c *SetKeyCmd) Run() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("API key cannot be empty")
	}

	apiKey, err := keyring.APIKeyFromServiceName(c.Service)
	if err != nil {
		return fmt.Errorf("invalid service: %w", err)
	}

	if err := keyring.Set(apiKey, c.Secret); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Printf("%s API key stored in keychain\n", c.Service)

	return nil
}

// ListKeysCmd shows which API keys are configured.
type ListKeysCmd struct{}

// Run executes the list-keys command.
//
//nolint:unparam // error return required by Kong interface
func (c *ListKeysCmd) Run() error {
	allSet := true

	for _, apiKey := range keyring.AllAPIKeys() {
		if keyring.IsSet(apiKey) {
			fmt.Printf("%s: configured\n", apiKey.DisplayName())
		} else {
			fmt.Printf("%s: not set\n", apiKey.DisplayName())
			allSet = false
		}
	}

	if !allSet {
		fmt.Println("\nRun 'author config set-key <service> <key>' to configure.")
	}

	return nil
}

func main() {
	// Set up text-based logger for CLI output
	cfg := config.Defaults()
	slog.SetDefault(logger.SetupCLI(&cfg))

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

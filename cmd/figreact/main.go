package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/figreact"
	"github.com/fwojciec/figreact/batch"
	"github.com/fwojciec/figreact/dedupe"
	"github.com/fwojciec/figreact/gemini"
	"github.com/fwojciec/figreact/koanf"
	figslog "github.com/fwojciec/figreact/slog"
	"github.com/fwojciec/figreact/sqlite"
	"github.com/fwojciec/figreact/treesitter"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run(). A db_path setting in the
	// config file takes precedence.
	DBPath string

	// Stdin is read by extract when no file is given.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService figreact.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("figreact"),
		kong.Description("Hoist repeated JSX fragments into reusable React components."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'figreact --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	cfg, err := koanf.LoadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", figreact.ErrorMessage(err))
		fmt.Fprintf(stderr, "Hint: Settings are read from %s and %s* environment variables\n", koanf.DefaultConfigPath, koanf.EnvPrefix)
		return err
	}
	deps.Config = cfg

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("invocation", uuid.NewString())
	deps.Logger = logger

	parserSvc := treesitter.NewParser()
	deps.Validator = parserSvc
	deps.Extractor = figslog.NewLoggingExtractor(dedupe.NewExtractor(parserSvc), logger)

	if cmd == "batch" || cmd == "history" || cmd == "show" {
		if cfg.DBPath != "" {
			m.DBPath = cfg.DBPath
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set FIGREACT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.RunService = sqlite.NewRunService(m.DB)
		deps.Runs = m.RunService
	}

	target := cfg.Relabel.Target
	switch cmd {
	case "extract":
		if cli.Extract.Relabel != "" {
			target = cli.Extract.Relabel
		}
	case "batch":
		if cli.Batch.Relabel != "" {
			target = cli.Batch.Relabel
		}
	default:
		target = ""
	}

	if target != "" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Relabeler = figslog.NewLoggingRelabeler(gemini.NewRelabeler(client, cfg.Relabel.Model), logger)
		deps.RelabelTarget = target
		deps.Limiter = batch.NewLimiter(cfg.Relabel.RPS)
	}

	if cmd == "batch" && cli.Batch.Tokens {
		tokenCounter, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.TokenCounter = tokenCounter
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for token counting. The local tokenizer only
// supports a subset of Gemini models.
const tokenizerModel = "gemini-2.5-flash"

func defaultDBPath() string {
	if path := os.Getenv("FIGREACT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "figreact.db"
	}
	dir := filepath.Join(home, ".figreact")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "figreact.db")
}

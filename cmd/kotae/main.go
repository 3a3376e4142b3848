// Package main is the kotae CLI entry point.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/hyperjump/kotae/internal/cli"
	"github.com/hyperjump/kotae/internal/config"
	"github.com/hyperjump/kotae/internal/corpus"
	"github.com/hyperjump/kotae/internal/embedding"
	"github.com/hyperjump/kotae/internal/lexicon"
	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/internal/narrate"
	"github.com/hyperjump/kotae/internal/query"
	"github.com/hyperjump/kotae/internal/server"
	"github.com/hyperjump/kotae/pkg/utils"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/kotae/config.yaml"

// maxChatTurns bounds the history a chat session threads into each query.
const maxChatTurns = 20

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory wins if it exists, and a missing default file yields
// the built-in defaults. Returns the config and the path actually loaded
// ("" for built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			var cfg config.Config
			config.ApplyDefaults(&cfg)
			return &cfg, "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	var err error
	command := os.Args[1]
	switch command {
	case "server":
		err = runServer(os.Args[2:])
	case "ask":
		err = runAsk(os.Args[2:], os.Stdout)
	case "chat":
		err = runChat(os.Args[2:], os.Stdin, os.Stdout)
	case "version", "--version", "-v":
		fmt.Printf("kotae version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// commonFlags are shared by every subcommand that builds the engine.
type commonFlags struct {
	configPath *string
	corpusPath *string
	debug      *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath: fs.String("config", defaultConfigPath, "config file path"),
		corpusPath: fs.String("corpus", "", "résumé document path (overrides corpus.path)"),
		debug:      fs.Bool("debug", false, "enable debug logging"),
	}
}

// resolve loads the config named by the flags and applies overrides.
func (f commonFlags) resolve() (*config.Config, string, error) {
	cfg, path, err := loadConfig(*f.configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	if *f.corpusPath != "" {
		cfg.Corpus.Path = *f.corpusPath
	}
	cfg.Debug = cfg.Debug || *f.debug
	return cfg, path, nil
}

// app is the engine plus its optional collaborators.
type app struct {
	processor *query.Processor
	narrator  *narrate.Narrator
	embedder  embedding.Embedder
}

func (a *app) Close() {
	if a.embedder != nil {
		_ = a.embedder.Close()
	}
}

// answer runs question through the engine and, when configured, the narrator.
func (a *app) answer(ctx context.Context, question string, history []models.Turn) models.QueryResult {
	res := a.processor.Query(ctx, question, history)
	return a.narrator.Apply(ctx, question, res)
}

// buildApp loads the corpus and wires the engine. A semantic index that
// cannot be built is logged and skipped; the similarity graph still serves.
func buildApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	c, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, err
	}
	logger.Info("corpus loaded", zap.String("path", cfg.Corpus.Path), zap.Any("counts", c.Counts()))

	a := &app{}
	lexOpts := []lexicon.Option{lexicon.WithLogger(logger.Named("lexicon"))}
	emb, err := embedding.New(cfg.Embedding, logger.Named("embedding"))
	if err != nil {
		logger.Warn("embedder unavailable, semantic fallback disabled", zap.Error(err))
	}
	if emb != nil {
		idx, idxErr := lexicon.NewSemanticIndex(ctx, emb, c.Vocabulary(),
			lexicon.WithTopK(cfg.Engine.SimilarityTopK),
			lexicon.WithFloor(cfg.Engine.SimilarityFloor),
			lexicon.WithWorkers(cfg.Embedding.Workers),
			lexicon.WithSemanticLogger(logger.Named("semantic")),
		)
		if idxErr != nil {
			logger.Warn("semantic index build failed, semantic fallback disabled", zap.Error(idxErr))
			_ = emb.Close()
		} else {
			a.embedder = emb
			lexOpts = append(lexOpts, lexicon.WithSemantic(idx))
		}
	}

	a.processor = query.Build(c, lexicon.New(lexOpts...), cfg.Engine, logger)

	if cfg.Narrator.Enabled {
		n, err := narrate.NewOpenAI(cfg.Narrator.Host, cfg.Narrator.Model,
			narrate.WithSubject(cfg.Engine.SubjectName),
			narrate.WithTimeout(cfg.Narrator.Timeout),
			narrate.WithLogger(logger.Named("narrator")),
		)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.narrator = n
	}
	return a, nil
}

func runServer(args []string) error {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	common := addCommonFlags(fs)
	_ = fs.Parse(args)

	cfg, resolvedConfigPath, err := common.resolve()
	if err != nil {
		return err
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", cfg.Debug),
	)

	a, err := buildApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize components", zap.Error(err))
	}
	defer a.Close()

	srv := server.NewServer(a.processor, a.narrator, &cfg.Server, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}

// argsReorder moves any flags (and their values) that appear after the
// question to the front so that flag.Parse sees them. Go's flag package stops
// at the first non-flag argument, so "kotae ask what projects -json" would
// otherwise leave -json unparsed.
func argsReorder(args []string) []string {
	for i, a := range args {
		if len(a) > 0 && a[0] == '-' {
			if i == 0 {
				return args
			}
			reordered := make([]string, 0, len(args))
			reordered = append(reordered, args[i:]...)
			reordered = append(reordered, args[:i]...)
			return reordered
		}
	}
	return args
}

// buildQuestion joins all positional args with spaces so multi-word questions
// work the same with or without shell quoting.
func buildQuestion(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func runAsk(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	common := addCommonFlags(fs)
	asJSON := fs.Bool("json", false, "print the result as JSON")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: kotae ask [flags] <question>\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(argsReorder(args))

	question := buildQuestion(fs.Args())
	if question == "" {
		fs.Usage()
		return errors.New("a question is required")
	}
	cfg, _, err := common.resolve()
	if err != nil {
		return err
	}
	logger, err := utils.NewCLILogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	format := cli.OutputText
	if *asJSON {
		format = cli.OutputJSON
	}
	return cli.WriteResult(stdout, a.answer(ctx, question, nil), format)
}

func runChat(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("chat", flag.ExitOnError)
	common := addCommonFlags(fs)
	_ = fs.Parse(args)

	cfg, _, err := common.resolve()
	if err != nil {
		return err
	}
	logger, err := utils.NewCLILogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := buildApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return chat(ctx, a, cfg.Engine.SubjectName, stdin, stdout, logger)
}

// chat runs the REPL until stdin ends, ctx is cancelled or the user types
// "exit". Each answer is threaded into the history of the next question;
// "reset" starts over.
func chat(ctx context.Context, a *app, subject string, stdin io.Reader, stdout io.Writer, logger *zap.Logger) error {
	session := uuid.New().String()
	logger = logger.With(zap.String("session", session))

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintln(stdout, boldGreen(fmt.Sprintf("Ask me about %s's work.", subject)))
	fmt.Fprintf(stdout, "Session %s. Type 'reset' to start over, 'exit' or Ctrl+C to quit.\n\n", session)

	var history []models.Turn
	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, boldGreen("You: "))
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(input) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "reset":
			history = nil
			fmt.Fprintln(stdout, "History cleared.")
			fmt.Fprintln(stdout)
			continue
		}
		if ctx.Err() != nil {
			return nil
		}

		res := a.answer(ctx, input, history)
		logger.Debug("chat turn",
			zap.String("item_type", res.ItemType),
			zap.Strings("ids", res.IDs()),
			zap.Int("history", len(history)),
		)
		if err := cli.WriteResult(stdout, res, cli.OutputText); err != nil {
			return err
		}
		fmt.Fprintln(stdout)

		history = append(history,
			models.Turn{Role: "user", Content: input},
			models.Turn{Role: "assistant", Content: res.ResponseText, Result: &res},
		)
		if len(history) > maxChatTurns {
			history = history[len(history)-maxChatTurns:]
		}
	}
	return scanner.Err()
}

func printUsage() {
	fmt.Println(`kotae - Natural-language questions over a résumé

Usage:
  kotae server [flags]            Start the HTTP server
  kotae ask [flags] <question>    Answer one question
  kotae chat [flags]              Interactive session with follow-ups
  kotae version                   Show version
  kotae help                      Show this help

Common Flags:
  --config string    Config file path (default: /usr/local/etc/kotae/config.yaml;
                     ./config.yaml is preferred when present)
  --corpus string    Résumé document path (overrides corpus.path)
  --debug            Enable debug logging

Ask Flags:
  --json             Print the result as JSON

Examples:
  kotae server
  kotae ask "What Python experience does he have?"
  kotae ask --json publications from 2023
  kotae chat --corpus ./data/corpus.yaml`)
}

package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/a-h/gugi/auth"
	"github.com/a-h/gugi/coach"
	"github.com/a-h/gugi/db"
	chatpost "github.com/a-h/gugi/handlers/chat/post"
	healthget "github.com/a-h/gugi/handlers/health/get"
	indexget "github.com/a-h/gugi/handlers/index/get"
	statusget "github.com/a-h/gugi/handlers/status/get"
	statuspost "github.com/a-h/gugi/handlers/status/post"
	"github.com/a-h/gugi/llm"
	"github.com/rqlite/gorqlite"
	"github.com/rs/cors"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

type ServeCommand struct {
	RqliteURL       string        `help:"The URL of the rqlite server. Status checks are disabled if empty." env:"RQLITE_URL" default:""`
	LLMProvider     string        `help:"The LLM provider to use." env:"LLM_PROVIDER" enum:"gemini,openai,ollama" default:"gemini"`
	GeminiAPIKey    string        `help:"The Google AI API key." env:"GEMINI_API_KEY" default:""`
	OpenAIAPIKey    string        `help:"The OpenAI API key." env:"OPENAI_API_KEY" default:""`
	OpenAIModel     string        `help:"The OpenAI model to chat with." env:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OllamaURL       string        `help:"The URL of the Ollama server." env:"OLLAMA_URL" default:""`
	OllamaModel     string        `help:"The Ollama model to chat with." env:"OLLAMA_MODEL" default:"mistral-nemo"`
	SystemMessage   string        `help:"A file containing the system message sent with every query." env:"SYSTEM_MESSAGE" default:""`
	LLMTimeout      time.Duration `help:"The maximum time to wait for the LLM." env:"LLM_TIMEOUT" default:"30s"`
	ListenAddr      string        `help:"The address to listen on." env:"LISTEN_ADDR" default:"localhost:8001"`
	TLSCertFile     string        `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile      string        `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	APIKeysFile     string        `help:"The file containing a JSON map of API keys to usernames. Authentication is disabled if empty." env:"API_KEYS_FILE" default:""`
	ShutdownTimeout time.Duration `help:"The time to wait for requests to finish on shutdown." env:"SHUTDOWN_TIMEOUT" default:"5s"`
	LogLevel        string        `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

const systemMessage = `You are Gugi, a friendly health coach.`

func readFileOrDefault(filename, defaultContent string) (string, error) {
	if filename == "" {
		return defaultContent, nil
	}
	contents, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return string(contents), nil
}

// statusStore is satisfied by *db.Queries.
type statusStore interface {
	statuspost.Store
	statusget.Store
	healthget.Pinger
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	systemMessage, err := readFileOrDefault(c.SystemMessage, systemMessage)
	if err != nil {
		return fmt.Errorf("failed to read system message: %w", err)
	}

	table, err := c.modelTable()
	if err != nil {
		return err
	}

	var store statusStore
	if c.RqliteURL != "" {
		queries, err := c.openDatabase(log)
		if err != nil {
			return err
		}
		if queries != nil {
			defer queries.Close()
			store = queries
		}
	} else {
		log.Warn("RQLITE_URL not set, database features disabled")
	}

	log.Info("creating LLM clients", slog.String("provider", c.LLMProvider))
	lc := c.newLangChain(ctx, log, systemMessage)
	defer func() {
		if closeErr := lc.Close(); closeErr != nil {
			log.Error("failed to close LLM clients", slog.Any("error", closeErr))
		}
	}()
	var client llm.Client
	if slices.Contains(lc.Providers(), c.LLMProvider) {
		client = lc
	}
	ch := coach.New(log, client, table, coach.WithTimeout(c.LLMTimeout))
	if ch.Live() {
		log.Info("LLM client initialized", slog.String("provider", table.Provider), slog.String("model", table.Canonical))
	} else {
		log.Warn("no credentials for LLM provider, replies will use fallback text", slog.String("provider", c.LLMProvider))
	}

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", indexget.Root{})
	mux.Handle("GET /api/{$}", indexget.API{})
	mux.Handle("POST /api/chat", chatpost.New(log, ch))
	mux.Handle("POST /api/status", statuspost.New(log, store))
	mux.Handle("GET /api/status", statusget.New(log, store))
	mux.Handle("GET /api/health/db", healthget.New(log, store))

	var handler http.Handler = mux
	if c.APIKeysFile != "" {
		apiKeyToUserName, err := auth.LoadFromFile(c.APIKeysFile)
		if err != nil {
			return fmt.Errorf("failed to load API keys: %w", err)
		}
		handler = auth.New(apiKeyToUserName, mux, "/", "/api/", "/api/health/db")
	}
	withCORS := cors.AllowAll().Handler(handler)

	s := &http.Server{
		Addr:              c.ListenAddr,
		Handler:           withCORS,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		var cert tls.Certificate
		cert, err = tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("Listening", slog.String("addr", c.ListenAddr))
		if s.TLSConfig != nil {
			errs <- s.ListenAndServeTLS("", "")
			return
		}
		errs <- s.ListenAndServe()
	}()

	select {
	case err = <-errs:
		return err
	case <-ctx.Done():
	}
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
	defer cancel()
	if err = s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err = <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// openDatabase returns nil queries if the database can't be reached, so the
// rest of the server keeps working.
func (c ServeCommand) openDatabase(log *slog.Logger) (queries *db.Queries, err error) {
	databaseURL, err := db.ParseRqliteURL(c.RqliteURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rqlite URL: %w", err)
	}
	log.Info("opening database connection", slog.String("url", databaseURL.Redacted()))
	conn, err := gorqlite.Open(databaseURL.DataSourceName())
	if err != nil {
		log.Error("failed to open database connection, database features disabled", slog.Any("error", err))
		return nil, nil
	}

	log.Info("migrating database schema")
	version, err := db.Migrate(databaseURL)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("connected to database", slog.Uint64("schemaVersion", uint64(version)))
	return db.New(conn), nil
}

// newLangChain registers a model for each provider with credentials. A provider
// that fails to construct is skipped, and its requests fall back to the offline
// replies.
func (c ServeCommand) newLangChain(ctx context.Context, log *slog.Logger, systemMessage string) *llm.LangChain {
	lc := llm.NewLangChain(systemMessage)
	httpClient := &http.Client{}

	if c.GeminiAPIKey != "" {
		gc, err := googleai.New(ctx,
			googleai.WithAPIKey(c.GeminiAPIKey),
			googleai.WithDefaultModel(coach.Gemini.Canonical))
		if err != nil {
			log.Error("failed to create Gemini client", slog.Any("error", err))
		} else {
			lc.Register(coach.Gemini.Provider, gc)
		}
	}
	if c.OpenAIAPIKey != "" {
		oc, err := openai.New(
			openai.WithToken(c.OpenAIAPIKey),
			openai.WithModel(c.OpenAIModel),
			openai.WithHTTPClient(httpClient))
		if err != nil {
			log.Error("failed to create OpenAI client", slog.Any("error", err))
		} else {
			lc.Register("openai", oc)
		}
	}
	if c.OllamaURL != "" {
		oc, err := ollama.New(
			ollama.WithModel(c.OllamaModel),
			ollama.WithHTTPClient(httpClient),
			ollama.WithServerURL(c.OllamaURL))
		if err != nil {
			log.Error("failed to create Ollama client", slog.Any("error", err))
		} else {
			lc.Register("ollama", oc)
		}
	}
	log.Debug("LLM providers configured", slog.Any("providers", lc.Providers()))
	return lc
}

func (c ServeCommand) modelTable() (coach.ModelTable, error) {
	switch c.LLMProvider {
	case "openai":
		if c.OpenAIModel == "" {
			return coach.ModelTable{}, errors.New("OPENAI_MODEL must not be empty")
		}
		return coach.SingleModel("openai", c.OpenAIModel), nil
	case "ollama":
		if c.OllamaModel == "" {
			return coach.ModelTable{}, errors.New("OLLAMA_MODEL must not be empty")
		}
		return coach.SingleModel("ollama", c.OllamaModel), nil
	default:
		return coach.Gemini, nil
	}
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/harulab/AibouCheck/internal/api"
	"github.com/harulab/AibouCheck/internal/bot"
	"github.com/harulab/AibouCheck/internal/engine"
	"github.com/harulab/AibouCheck/internal/genai"
	"github.com/harulab/AibouCheck/internal/messaging"
	"github.com/harulab/AibouCheck/internal/models"
	"github.com/harulab/AibouCheck/internal/session"
	"github.com/harulab/AibouCheck/internal/store"
	"github.com/harulab/AibouCheck/internal/twilio"
	"github.com/harulab/AibouCheck/internal/util"
	"github.com/harulab/AibouCheck/internal/whatsapp"
	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for AibouCheck state data
	DefaultStateDir = "/var/lib/aiboucheck"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "aiboucheck.db"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	if err := run(flags); err != nil {
		slog.Error("AibouCheck failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("AibouCheck exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL    string
	StateDir       string
	OpenAIKey      string
	APIAddr        string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	Backend        string
	TierScheme     string
	ClassifyPolicy string
	Supplements    bool
}

// Flags holds command line flag values
type Flags struct {
	qrOutput       *string
	numeric        *bool
	stateDir       *string
	dbDSN          *string
	openaiKey      *string
	apiAddr        *string
	redisAddr      *string
	redisPassword  *string
	redisDB        *int
	backend        *string
	tierScheme     *string
	classifyPolicy *string
	supplements    *bool
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			redisDB = parsed
		} else {
			slog.Warn("Invalid REDIS_DB value, using 0", "value", raw)
		}
	}

	config := Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		StateDir:       os.Getenv("AIBOUCHECK_STATE_DIR"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		APIAddr:        os.Getenv("API_ADDR"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		Backend:        os.Getenv("MESSAGING_BACKEND"),
		TierScheme:     os.Getenv("TIER_SCHEME"),
		ClassifyPolicy: os.Getenv("CLASSIFY_POLICY"),
		Supplements:    util.ParseBoolEnv("SUPPLEMENTS_ENABLED", true),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No AIBOUCHECK_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}
	if config.Backend == "" {
		config.Backend = "whatsapp"
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"AIBOUCHECK_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"API_ADDR", config.APIAddr,
		"REDIS_ADDR", config.RedisAddr,
		"MESSAGING_BACKEND", config.Backend,
		"TIER_SCHEME", config.TierScheme,
		"CLASSIFY_POLICY", config.ClassifyPolicy,
		"SUPPLEMENTS_ENABLED", config.Supplements)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		qrOutput:       flag.String("qr-output", "", "path to write login QR code"),
		numeric:        flag.Bool("numeric-code", false, "use numeric login code instead of QR code"),
		stateDir:       flag.String("state-dir", config.StateDir, "state directory for AibouCheck data (overrides $AIBOUCHECK_STATE_DIR)"),
		dbDSN:          flag.String("db-dsn", config.DatabaseURL, "database DSN for the user/check store (overrides $DATABASE_URL)"),
		openaiKey:      flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key (overrides $OPENAI_API_KEY)"),
		apiAddr:        flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		redisAddr:      flag.String("redis-addr", config.RedisAddr, "Redis address for session state (overrides $REDIS_ADDR)"),
		redisPassword:  flag.String("redis-password", config.RedisPassword, "Redis password (overrides $REDIS_PASSWORD)"),
		redisDB:        flag.Int("redis-db", config.RedisDB, "Redis database number (overrides $REDIS_DB)"),
		backend:        flag.String("messaging-backend", config.Backend, "messaging backend: whatsapp or twilio (overrides $MESSAGING_BACKEND)"),
		tierScheme:     flag.String("tier-scheme", config.TierScheme, "play-time tier scheme: three or four (overrides $TIER_SCHEME)"),
		classifyPolicy: flag.String("classify-policy", config.ClassifyPolicy, "classification policy: pooled or per_axis (overrides $CLASSIFY_POLICY)"),
		supplements:    flag.Bool("supplements", config.Supplements, "enable GenAI supplemental remarks (overrides $SUPPLEMENTS_ENABLED)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"qrOutput", *flags.qrOutput,
		"numeric", *flags.numeric,
		"stateDir", *flags.stateDir,
		"dbDSN_set", *flags.dbDSN != "",
		"openaiKeySet", *flags.openaiKey != "",
		"apiAddr", *flags.apiAddr,
		"redisAddr", *flags.redisAddr,
		"backend", *flags.backend,
		"tierScheme", *flags.tierScheme,
		"classifyPolicy", *flags.classifyPolicy,
		"supplements", *flags.supplements)

	// Update database DSN if not explicitly set but state directory is provided
	if *flags.dbDSN == config.DatabaseURL && config.DatabaseURL == filepath.Join(config.StateDir, DefaultDBFileName) && *flags.stateDir != config.StateDir {
		*flags.dbDSN = filepath.Join(*flags.stateDir, DefaultDBFileName)
		slog.Debug("Updated dbDSN based on state directory", "new_state_dir", *flags.stateDir)
	}

	return flags
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	if store.DetectDSNType(*flags.dbDSN) == "sqlite" {
		stateDir := filepath.Dir(*flags.dbDSN)
		slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "state_dir", stateDir)
			return err
		}
	}
	return nil
}

// buildStore selects the storage backend from the DSN.
func buildStore(flags Flags) (store.Store, error) {
	switch store.DetectDSNType(*flags.dbDSN) {
	case "postgres":
		slog.Debug("Detected PostgreSQL DSN, configuring PostgreSQL store")
		return store.NewPostgresStore(store.WithPostgresDSN(*flags.dbDSN))
	case "mongodb":
		slog.Debug("Detected MongoDB URI, configuring MongoDB store")
		return store.NewMongoStore(store.WithMongoURI(*flags.dbDSN))
	default:
		slog.Debug("Detected SQLite DSN, configuring SQLite store", "db_path", *flags.dbDSN)
		return store.NewSQLiteStore(store.WithSQLiteDSN(*flags.dbDSN))
	}
}

// buildSessionStore uses Redis when configured, process memory otherwise.
func buildSessionStore(flags Flags) (session.Store, error) {
	if *flags.redisAddr != "" {
		slog.Debug("Configuring Redis session store", "addr", *flags.redisAddr)
		return session.NewRedisStore(*flags.redisAddr, *flags.redisPassword, *flags.redisDB)
	}
	slog.Debug("No Redis address provided, using in-memory session store")
	return session.NewMemoryStore(), nil
}

// buildEngines assembles the bot engine (optionally with GenAI
// supplements) and a deterministic engine for API reply previews.
func buildEngines(flags Flags) (botEngine, previewEngine *engine.Engine, err error) {
	var engOpts []engine.Option
	if *flags.tierScheme != "" {
		engOpts = append(engOpts, engine.WithTierScheme(engine.TierScheme(*flags.tierScheme)))
	}
	if *flags.classifyPolicy != "" {
		engOpts = append(engOpts, engine.WithClassifyPolicy(engine.ClassifyPolicy(*flags.classifyPolicy)))
	}
	previewEngine = engine.New(engOpts...)

	if *flags.supplements && *flags.openaiKey != "" {
		var genaiOpts []genai.Option
		genaiOpts = append(genaiOpts, genai.WithAPIKey(*flags.openaiKey))
		client, err := genai.NewClient(genaiOpts...)
		if err != nil {
			return nil, nil, err
		}
		engOpts = append(engOpts, engine.WithSupplements(
			engine.NewSupplementGenerator(client, engine.DefaultSupplementTimeout)))
		slog.Debug("GenAI supplements enabled")
	} else {
		slog.Debug("GenAI supplements disabled", "supplements_flag", *flags.supplements, "key_set", *flags.openaiKey != "")
	}

	return engine.New(engOpts...), previewEngine, nil
}

// buildMessaging creates the configured transport service.
func buildMessaging(flags Flags) (messaging.Service, error) {
	switch *flags.backend {
	case "twilio":
		client, err := twilio.NewClient()
		if err != nil {
			return nil, err
		}
		return messaging.NewTwilioService(client), nil
	default:
		var waOpts []whatsapp.Option
		waOpts = append(waOpts, whatsapp.WithDBDSN(filepath.Join(*flags.stateDir, "whatsmeow.db")))
		if *flags.qrOutput != "" {
			waOpts = append(waOpts, whatsapp.WithQRCodeOutput(*flags.qrOutput))
		}
		if *flags.numeric {
			waOpts = append(waOpts, whatsapp.WithNumericCode())
		}
		client, err := whatsapp.NewClient(waOpts...)
		if err != nil {
			return nil, err
		}
		return messaging.NewWhatsAppService(client), nil
	}
}

// run wires the modules together and blocks until shutdown.
func run(flags Flags) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st, err := buildStore(flags)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("Failed to close store", "error", err)
		}
	}()

	sessions, err := buildSessionStore(flags)
	if err != nil {
		return err
	}

	eng, previewEng, err := buildEngines(flags)
	if err != nil {
		return err
	}

	msgService, err := buildMessaging(flags)
	if err != nil {
		return err
	}
	defer func() {
		if err := msgService.Stop(); err != nil {
			slog.Error("Failed to stop messaging service", "error", err)
		}
	}()

	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	if twilioService, ok := msgService.(*messaging.TwilioService); ok {
		apiOpts = append(apiOpts, api.WithResponseInjector(func(resp models.Response) {
			twilioService.InjectResponse(resp)
		}))
	}
	server := api.NewServer(previewEng, st, apiOpts...)
	server.Start()
	defer func() {
		if err := server.Stop(); err != nil {
			slog.Error("Failed to stop API server", "error", err)
		}
	}()

	b := bot.New(
		bot.WithEngine(eng),
		bot.WithStore(st),
		bot.WithSessionStore(sessions),
		bot.WithMessagingService(msgService),
	)
	if err := b.Start(ctx); err != nil {
		return err
	}

	slog.Info("AibouCheck running", "backend", *flags.backend)
	<-ctx.Done()
	slog.Info("Shutdown signal received")
	return nil
}

// Command roundtable runs a full group-discussion session from the
// terminal: four agents negotiate a shared ranking of salvage items
// until the session ends, then the transcript, per-participant
// metrics, and the final task score are printed.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-roundtable/infrastructure/llm"
	"github.com/ahrav/go-roundtable/infrastructure/middleware"
	"github.com/ahrav/go-roundtable/infrastructure/oracle"
	"github.com/ahrav/go-roundtable/internal/domain"
	"github.com/ahrav/go-roundtable/internal/engine"
)

// appConfig is the YAML file layout: session parameters plus the
// provider settings the engine itself never sees.
type appConfig struct {
	Session  engine.Config `yaml:"session"`
	Oracle   oracle.Config `yaml:"oracle"`
	Provider struct {
		Type      string        `yaml:"type"`
		Model     string        `yaml:"model"`
		APIKeyEnv string        `yaml:"api_key_env"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"provider"`
}

func defaultAppConfig() appConfig {
	var cfg appConfig
	cfg.Session = engine.DefaultConfig()
	cfg.Oracle = oracle.DefaultConfig(cfg.Session.MaxTurns)
	cfg.Provider.Type = "openai"
	cfg.Provider.APIKeyEnv = "OPENAI_API_KEY"
	cfg.Provider.Timeout = 60 * time.Second
	return cfg
}

func loadConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func main() {
	var (
		configPath = flag.String("config", "", "Path to YAML config file")
		scenario   = flag.String("scenario", "", "Scenario override: baseline, leadership, social, gamification")
		delay      = flag.Duration("delay", 2*time.Second, "Delay between turns")
		verbose    = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*configPath, *scenario, *delay, logger); err != nil {
		logger.Error("session failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, scenarioOverride string, delay time.Duration, logger *slog.Logger) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if scenarioOverride != "" {
		cfg.Session.Scenario = domain.Scenario(scenarioOverride)
	}

	apiKey := os.Getenv(cfg.Provider.APIKeyEnv)
	if apiKey == "" {
		return fmt.Errorf("environment variable %s is not set", cfg.Provider.APIKeyEnv)
	}

	metrics := middleware.NewPrometheusMetrics()

	client, err := llm.NewClient(cfg.Provider.Type, llm.ClientConfig{
		APIKey:  apiKey,
		Model:   cfg.Provider.Model,
		Timeout: cfg.Provider.Timeout,
		Middleware: []llm.Middleware{
			llm.MetricsMiddleware(metrics),
			llm.RetryMiddleware(3, time.Second, 30*time.Second),
			llm.RateLimitMiddleware(5, 10),
			llm.TimeoutMiddleware(cfg.Provider.Timeout),
		},
	})
	if err != nil {
		return fmt.Errorf("creating LLM client: %w", err)
	}

	catalog := domain.LostAtSeaCatalog()
	orc, err := oracle.New(client, catalog, cfg.Oracle)
	if err != nil {
		return fmt.Errorf("creating oracle: %w", err)
	}

	roster := domain.DefaultRoster()
	session, err := engine.NewSessionState(cfg.Session, roster)
	if err != nil {
		return err
	}
	sched, err := engine.NewScheduler(cfg.Session, catalog, orc, metrics, session)
	if err != nil {
		return err
	}

	logger.Info("starting session",
		"scenario", cfg.Session.Scenario,
		"max_turns", cfg.Session.MaxTurns,
		"model", client.GetModel(),
		"participants", len(roster))
	if session.LeaderID != 0 {
		logger.Info("leader assigned", "participant", session.LeaderID)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	player := engine.NewAutoPlayer(sched, delay, logger)
	if err := player.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		printSummary(sched)
		return err
	}

	printSummary(sched)
	return nil
}

// printSummary writes the transcript, the final ranking, per-agent
// metrics, and the task score to stdout.
func printSummary(sched *engine.Scheduler) {
	state := sched.Session()
	names := make(map[int]string, len(state.Participants))
	for _, p := range state.Participants {
		names[p.ID] = p.Name
	}

	fmt.Println("\n=== Transcript ===")
	for _, u := range state.Transcript {
		fmt.Printf("[turn %d] %s: %s\n", u.Turn, names[u.ParticipantID], u.Message)
	}

	fmt.Println("\n=== Final ranking ===")
	for rank, slot := range state.Ranking.Slots() {
		if slot == nil {
			fmt.Printf("%2d. -\n", rank+1)
			continue
		}
		fmt.Printf("%2d. %s %s\n", rank+1, slot.Emoji, slot.Name)
	}

	fmt.Println("\n=== Participants ===")
	for _, p := range state.Participants {
		fmt.Printf("%s: words=%d interactions=%d toggles=%d idle=%d participation=%.0f%%\n",
			p.Name, p.WordsSpoken, p.Interactions, p.CameraToggles,
			p.TimesDoingNothing, p.ParticipationRate*100)
	}

	fmt.Printf("\nTurns: %d", state.CurrentTurn)
	if state.Ended {
		fmt.Printf(" (ended: %s)", state.EndReason)
	}
	fmt.Printf("\nTask score: %d (lower is better)\n", sched.TaskScore())
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nebulus/blackbox/internal/config"
	"github.com/nebulus/blackbox/internal/httpapi"
	"github.com/nebulus/blackbox/internal/llm"
	"github.com/nebulus/blackbox/internal/logger"
	"github.com/nebulus/blackbox/internal/mail"
	"github.com/nebulus/blackbox/internal/scheduler"
	"github.com/nebulus/blackbox/internal/security"
	"github.com/nebulus/blackbox/internal/tools"
	"github.com/nebulus/blackbox/internal/tools/file"
	"github.com/nebulus/blackbox/internal/workspace"
)

var (
	serveConfigPath string
	serveLogLevel   string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the automation hub (main command)",
	Long: `Start the hub with the given configuration: tool registry, job
scheduler and the REST facade, with graceful shutdown on SIGINT/SIGTERM.`,
	Run: serveHandler,
}

func serveHandler(cmd *cobra.Command, args []string) {
	_ = config.LoadEnvOptional("./.env")

	configPath := serveConfigPath
	if configPath == "" {
		configPath = "./config.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if serveLogLevel != "" {
		cfg.Logging.Level = serveLogLevel
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Println("Configuration validation failed:")
		for _, e := range errs {
			fmt.Printf("  - %v\n", e)
		}
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	log.Info("starting blackbox",
		logger.Field{Key: "version", Value: Version},
		logger.Field{Key: "config", Value: configPath},
		logger.Field{Key: "workspace", Value: cfg.Workspace.Path},
		logger.Field{Key: "llm_model", Value: cfg.LLM.Model},
		logger.Field{Key: "listen", Value: cfg.HTTP.Listen})

	guard, err := workspace.NewGuard(cfg.Workspace.Path)
	if err != nil {
		log.Error("failed to initialize workspace", err)
		os.Exit(1)
	}

	provider := llm.NewOllamaProvider(llm.OllamaConfig{
		Host:           cfg.LLM.Host,
		Model:          cfg.LLM.Model,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	}, log)
	sender := mail.NewSMTPSender(cfg.SMTP, log)
	if !sender.Enabled() {
		log.Warn("smtp host not configured, report delivery disabled")
	}

	store, err := scheduler.OpenStore(cfg.Scheduler.DBPath)
	if err != nil {
		log.Error("failed to open job store", err)
		os.Exit(1)
	}
	defer store.Close()

	metrics := scheduler.NewMetrics(prometheus.DefaultRegisterer)
	pipeline := scheduler.NewReportPipeline(provider, sender, log, metrics)
	engine := scheduler.NewEngine(store, pipeline, log, metrics)

	registry := tools.NewRegistry()
	registerTools(registry, guard, cfg, engine, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := engine.Start(ctx); err != nil {
		log.Error("failed to start scheduler", err)
		os.Exit(1)
	}

	server := httpapi.New(cfg.HTTP.Listen, engine, registry, log, prometheus.DefaultGatherer)
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Info("blackbox is running",
		logger.Field{Key: "tools", Value: len(registry.List())})

	select {
	case sig := <-sigChan:
		log.Info("received shutdown signal",
			logger.Field{Key: "signal", Value: sig.String()})
	case err := <-serverErr:
		if err != nil {
			log.Error("http server failed", err)
		}
	}

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop http server", err)
	}
	cancel()
	engine.Stop()

	log.Info("blackbox stopped gracefully")
}

// registerTools wires every enabled tool into the registry.
func registerTools(registry *tools.Registry, guard *workspace.Guard, cfg *config.Config, engine *scheduler.Engine, log *logger.Logger) {
	register := func(tool tools.Tool) {
		if err := registry.Register(tool); err != nil {
			log.Error("failed to register tool", err,
				logger.Field{Key: "tool", Value: tool.Name()})
			os.Exit(1)
		}
	}

	register(file.NewReadTool(guard))
	register(file.NewWriteTool(guard))
	register(file.NewEditTool(guard))
	register(file.NewListTool(guard))
	register(file.NewDeleteTool(guard))
	log.Info("file tools registered")

	if cfg.Tools.Shell.Enabled {
		gate := security.NewGate(cfg.Tools.Shell.AllowedCommands)
		timeout := time.Duration(cfg.Tools.Shell.TimeoutSeconds) * time.Second
		register(tools.NewShellTool(gate, guard, timeout))
		log.Info("shell tool registered",
			logger.Field{Key: "allowed_commands", Value: len(cfg.Tools.Shell.AllowedCommands)})
	}

	webOpts := tools.WebOptions{
		Timeout:         time.Duration(cfg.Tools.Web.TimeoutSeconds) * time.Second,
		MaxResponseSize: cfg.Tools.Web.MaxResponseSize,
		UserAgent:       cfg.Tools.Web.UserAgent,
	}
	register(tools.NewSearchTool(webOpts))
	register(tools.NewScrapeTool(webOpts))
	register(tools.NewPDFTool(guard))
	register(tools.NewDocxTool(guard))
	log.Info("web and document tools registered")

	register(tools.NewScheduleTaskTool(engine))
	register(tools.NewListTasksTool(engine))
	register(tools.NewDeleteTaskTool(engine))
	register(tools.NewRunTaskTool(engine))
	log.Info("task tools registered")
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	serveCmd.Flags().StringVarP(&serveLogLevel, "log-level", "l", "", "Override log level (debug, info, warn, error)")
}

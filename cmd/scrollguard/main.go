// Package main is the CLI entry point for scrollguard.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/eliteGoblin/focusd/scroll_mon/internal/daemon"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/domain"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/infra"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/policy"
	"github.com/eliteGoblin/focusd/scroll_mon/internal/usecase"
)

var (
	// Version info (set via ldflags)
	Version   = "0.1.0"
	Commit    = "dev"
	BuildTime = "unknown"
)

// replayEpoch anchors at_ms offsets in replayed event logs.
var replayEpoch = time.Unix(0, 0).UTC()

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scrollguard",
	Short: "Scroll monitor - interrupts doom-scrolling in distracting apps",
	Long: `scrollguard watches scroll events from monitored apps (Chrome, Instagram,
Facebook, WhatsApp). Three quick scrolls in five seconds count as a violation
and raise a warning overlay. The fourth violation sends you home.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Monitor a live event stream",
	Long: `Reads JSON-lines scroll events from a file (or stdin with "-") and
enforces the scrolling budget in real time.

Each line looks like:
  {"type":"scroll","target":"com.instagram.android","offset":420}

With --follow the file is tailed as the platform bridge appends to it.
With --kill the HOME action terminates the target's desktop processes;
otherwise it is only logged.`,
	RunE: runMonitor,
}

var replayCmd = &cobra.Command{
	Use:   "replay <events.jsonl>",
	Short: "Replay a recorded event log on a virtual clock",
	Long: `Feeds a recorded event log through the monitor using each line's at_ms
timestamp instead of wall-clock time, then prints what would have happened.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List monitored applications",
	RunE:  runList,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Prints version, commit, and build time. Use --json for machine-readable output.`,
	Run:   runVersion,
}

var (
	eventsPath string
	follow     bool
	killMode   bool
	logFile    string
	verbose    bool
	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "/var/tmp/scrollguard.log", "Log file path (\"-\" for stderr)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Development logging to stderr")

	runCmd.Flags().StringVarP(&eventsPath, "events", "e", "-", "Event log path, \"-\" for stdin")
	runCmd.Flags().BoolVarP(&follow, "follow", "f", false, "Tail the event log for new events")
	runCmd.Flags().BoolVar(&killMode, "kill", false, "Terminate the target's processes instead of logging the HOME action")
	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	if follow && eventsPath == "-" {
		return fmt.Errorf("--follow needs a file path, not stdin")
	}

	logger := createLogger()
	defer func() { _ = logger.Sync() }()

	registry := policy.NewRegistry()
	targets := policy.NewTargetStoreFromRegistry(registry)

	var dispatcher domain.ActionDispatcher
	var processDispatcher *infra.ProcessDispatcher
	if killMode {
		processDispatcher = infra.NewProcessDispatcher(infra.NewProcessManager(), registry, logger)
		dispatcher = processDispatcher
	} else {
		dispatcher = infra.NewLogDispatcher(logger)
	}

	surface := infra.NewTerminalSurface(cmd.OutOrStdout(), infra.DefaultSurfaceWidth, logger)
	monitor := daemon.NewMonitor(daemon.DefaultMonitorConfig(), logger)
	session := usecase.NewSession(usecase.DefaultConfig(), targets, monitor, surface, dispatcher, logger)

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			logger.Info("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	events := monitor.NewEventChannel()
	sourceErr := make(chan error, 1)
	go func() {
		defer close(events)
		sourceErr <- readSource(ctx, cmd.InOrStdin(), events, logger)
	}()

	err := monitor.Run(ctx, events, session)
	if processDispatcher != nil {
		processDispatcher.Wait()
	}
	printSummary(cmd.OutOrStdout(), session.Snapshot())

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("monitor failed: %w", err)
	}

	select {
	case srcErr := <-sourceErr:
		if srcErr != nil && !errors.Is(srcErr, context.Canceled) {
			return fmt.Errorf("event source failed: %w", srcErr)
		}
	default:
	}
	return nil
}

func readSource(ctx context.Context, stdin io.Reader, out chan<- domain.Event, logger *zap.Logger) error {
	if eventsPath == "-" {
		return infra.ReadEvents(ctx, stdin, replayEpoch, out, logger)
	}
	if follow {
		return infra.NewTailSource(eventsPath, replayEpoch, logger).Run(ctx, out)
	}

	f, err := os.Open(eventsPath)
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()
	return infra.ReadEvents(ctx, f, replayEpoch, out, logger)
}

func runReplay(cmd *cobra.Command, args []string) error {
	logger := createLogger()
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open event log: %w", err)
	}
	defer f.Close()

	events, err := infra.LoadEvents(f, replayEpoch, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sched := infra.NewVirtualScheduler(replayEpoch)
	dispatcher := infra.NewLogDispatcher(logger)
	surface := infra.NewTerminalSurface(out, infra.DefaultSurfaceWidth, logger)
	session := usecase.NewSession(usecase.DefaultConfig(), policy.NewTargetStore(), sched, surface, dispatcher, logger)

	daemon.Replay(events, sched, session)

	fmt.Fprintf(out, "\nReplayed %d events\n", len(events))
	printSummary(out, session.Snapshot())
	for _, req := range dispatcher.Requests() {
		fmt.Fprintf(out, "  %s for %s at +%s\n",
			req.Action, req.TargetID, req.IssuedAt.Sub(replayEpoch))
	}
	return nil
}

func printSummary(w io.Writer, state domain.SessionState) {
	fmt.Fprintln(w, "\n=== scrollguard Summary ===")
	fmt.Fprintf(w, "Rapid-scroll bursts: %d\n", state.TotalBursts)
	fmt.Fprintf(w, "Sent home:           %d\n", state.Enforcements)
	if state.CurrentTarget != "" {
		fmt.Fprintf(w, "Last target:         %s\n", state.CurrentTarget)
	}
	fmt.Fprintln(w, "===========================")
}

func runList(cmd *cobra.Command, args []string) error {
	registry := policy.NewRegistry()
	cfg := usecase.DefaultConfig()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "\n=== Monitored Applications ===")
	for _, t := range registry.GetAll() {
		fmt.Fprintf(out, "\n[%s] %s\n", t.ID(), t.Name())
		fmt.Fprintln(out, "  Desktop processes:")
		for _, p := range t.ProcessPatterns() {
			fmt.Fprintf(out, "    - %s\n", p)
		}
	}

	fmt.Fprintln(out, "\nLimits:")
	fmt.Fprintf(out, "  Burst: %d scrolls over %d px within %s\n",
		cfg.BurstThreshold, cfg.MinScrollDistance, cfg.WindowDuration)
	fmt.Fprintf(out, "  Budget: %d bursts, then home after %s\n",
		cfg.MaxViolations, cfg.EnforcementDelay)
	fmt.Fprintln(out, "\n==============================")
	return nil
}

func createLogger() *zap.Logger {
	if verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			return logger
		}
	}

	config := zap.NewProductionConfig()
	if logFile != "-" {
		config.OutputPaths = []string{logFile}
		config.ErrorOutputPaths = []string{logFile}
	}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		// Fallback to stderr if file logging fails
		logger, _ = zap.NewProduction()
	}
	return logger
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		fmt.Printf(`{"version":"%s","commit":"%s","build_time":"%s"}`+"\n",
			Version, Commit, BuildTime)
	} else {
		fmt.Printf("scrollguard %s (commit: %s, built: %s)\n",
			Version, Commit, BuildTime)
	}
}

// Package commands defines the CLI command structure and flag bindings.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bsdsetup/internal/domain/entities"
	"bsdsetup/internal/infrastructure/config"
	"bsdsetup/internal/infrastructure/container"
	"bsdsetup/internal/infrastructure/logging"
	"bsdsetup/internal/infrastructure/metrics"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const timePrecision = 10 * time.Millisecond

type rootFlags struct {
	configPath     string
	logLevel       string
	nonInteractive bool
}

// Root returns the root command. Running it without a subcommand executes
// the full provisioning pipeline, mirroring a one-shot setup tool.
func Root() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "bsdsetup",
		Short:         "Provision a FreeBSD host into a hardened media server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvision(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to YAML configuration file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (overrides configuration)")
	cmd.PersistentFlags().BoolVar(&flags.nonInteractive, "non-interactive", false, "never prompt, skip the reboot question")

	// Flag-parse errors still get a warning plus usage; runtime errors stay
	// silent here and are reported once by main.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrf("Warning: %v\n\n%s", err, c.UsageString())
		return err
	})

	cmd.AddCommand(Version())

	return cmd
}

func runProvision(parent context.Context, flags *rootFlags) error {
	cfg, err := config.NewFileEnvLoader().Load(flags.configPath)
	if err != nil {
		return err
	}
	if flags.logLevel != "" {
		cfg.Runtime.LogLevel = flags.logLevel
	}

	logger := logging.New(logging.Options{
		Level:   cfg.Runtime.LogLevel,
		LogFile: cfg.Paths.LogFile,
	})

	hostname, _ := os.Hostname()
	metrics.SetRunInfo(versionString(), hostname)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := container.NewContainer(cfg, logger)

	if err := c.GetPreflight().Check(ctx); err != nil {
		logger.WithError(err).Error("Preflight check failed")
		return err
	}

	report, runErr := c.GetRunner().Run(ctx, c.GetSteps())

	// The textfile is best-effort telemetry, never a provisioning failure.
	if err := metrics.WriteTextfile(c.GetFileSystem(), cfg.Paths.MetricsFile); err != nil {
		logger.WithError(err).Warn("Cannot write metrics textfile")
	}

	printSummary(report)

	if runErr != nil {
		return runErr
	}

	return maybeReboot(ctx, c, flags.nonInteractive)
}

// printSummary writes the per-step outcome to stdout, separate from the
// structured log stream on stderr.
func printSummary(report *entities.Report) {
	if report == nil || len(report.Results) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("Provisioning finished in %s\n", report.FinishedAt.Sub(report.StartedAt).Round(timePrecision))
	for _, result := range report.Results {
		marker := "ok"
		if result.Status == entities.StatusFailed {
			marker = "FAILED"
			if result.Policy == entities.PolicyWarn {
				marker = "failed (continued)"
			}
		}
		fmt.Printf("  %-22s %-18s %s\n", result.Name, marker, result.Duration.Round(timePrecision))
	}

	if warnings := report.Warnings(); len(warnings) > 0 {
		fmt.Printf("\n%d step(s) failed but were non-fatal, see the log for details.\n", len(warnings))
	}
}

// maybeReboot offers a reboot after a successful run. Skipped entirely when
// running non-interactively or without a terminal; the answer defaults to no.
func maybeReboot(ctx context.Context, c *container.Container, nonInteractive bool) error {
	if nonInteractive || !isatty.IsTerminal(os.Stdin.Fd()) {
		return nil
	}

	var reboot bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reboot now?").
				Description("Some changes (timezone, kernel-level firewall state) apply fully after a reboot").
				Value(&reboot),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		// A declined or interrupted prompt never fails the run.
		return nil
	}
	if !reboot {
		return nil
	}

	_, err := c.GetCommandExecutor().Execute(ctx, "shutdown", "-r", "now")
	return err
}

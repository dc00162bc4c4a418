package app

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"attendcli/internal/config"
	apperrors "attendcli/internal/errors"
	"attendcli/internal/infrastructure"
	"attendcli/pkg/contracts"
)

// flagValues holds command line overrides. Only flags the user actually set
// are applied on top of the loaded configuration.
type flagValues struct {
	configFile  string
	rosterFile  string
	signInFile  string
	inputDir    string
	outputDir   string
	logLevel    string
	metricsFile string
	skipBlank   bool
	keepCSV     bool
}

// Execute runs the attendance command with args
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// NewRootCommand creates the attendance command
func NewRootCommand() *cobra.Command {
	flags := &flagValues{}

	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Reconcile a sign-in export against the expected participant roster",
		Long: `Attendance matches the names in a meeting sign-in export against a roster of
expected participants, resolving informal name variants through the roster's
alias column. Everyone is reported as Present, Absent or
"Present (Unrecognized Name)" in attendance.xlsx, or in attendance.csv when
the workbook cannot be written.

Configuration is read from attendance.yaml (or $ATTENDANCE_CONFIG) and
ATTENDANCE_* environment variables. Flags override both.`,
		Version:       contracts.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommand(cmd, flags)
		},
	}

	cmd.SetVersionTemplate(contracts.GetVersionInfo().String() + "\n")

	f := cmd.Flags()
	f.StringVar(&flags.configFile, "config", "", "config file (default is attendance.yaml or configs/attendance.yaml)")
	f.StringVar(&flags.rosterFile, "roster", "", "roster file, bypasses pattern discovery")
	f.StringVar(&flags.signInFile, "signins", "", "sign-in export, bypasses pattern discovery")
	f.StringVarP(&flags.inputDir, "input-dir", "i", "", "directory searched for input files")
	f.StringVarP(&flags.outputDir, "output-dir", "o", "", "directory the report is written to")
	f.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	f.BoolVar(&flags.skipBlank, "skip-blank-names", false, "drop sign-in names that are blank after normalization")
	f.BoolVar(&flags.keepCSV, "keep-csv", false, "keep attendance.csv after the workbook is written")

	return cmd
}

func runCommand(cmd *cobra.Command, flags *flagValues) error {
	cfg, err := config.LoadFile(flags.configFile)
	if err != nil {
		return apperrors.NewConfigError("failed to load configuration", err)
	}

	applyFlags(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return apperrors.NewConfigError("invalid command line options", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize logger", err)
	}
	defer infrastructure.CloseLogFile()

	_, err = NewApplication(cfg, logger, cmd.OutOrStdout()).Run(cmd.Context())
	return err
}

// applyFlags copies every flag the user set onto cfg
func applyFlags(cmd *cobra.Command, flags *flagValues, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("roster") {
		cfg.Input.RosterFile = flags.rosterFile
	}
	if changed("signins") {
		cfg.Input.SignInFile = flags.signInFile
	}
	if changed("input-dir") {
		cfg.Input.Dir = flags.inputDir
	}
	if changed("output-dir") {
		cfg.Output.Dir = flags.outputDir
	}
	if changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if changed("metrics-file") {
		cfg.Metrics.TextfilePath = flags.metricsFile
	}
	if changed("skip-blank-names") {
		cfg.Matching.SkipBlankNames = flags.skipBlank
	}
	if changed("keep-csv") {
		cfg.Output.KeepCSV = flags.keepCSV
	}
}

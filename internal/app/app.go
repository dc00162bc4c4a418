package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"attendcli/internal/attendance"
	"attendcli/internal/config"
	apperrors "attendcli/internal/errors"
	"attendcli/internal/exporter"
	"attendcli/internal/files"
	"attendcli/internal/infrastructure"
	"attendcli/internal/metrics"
	"attendcli/internal/report"
	"attendcli/internal/roster"
	"attendcli/internal/validation"
	"attendcli/pkg/contracts"
	"attendcli/pkg/contracts/domain"
)

// AppName is shown in logs and the version banner
const AppName = "Attendance Checker"

// Application wires the reconciliation pipeline for one run
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Recorder
	Stdout  io.Writer

	discovery *files.Discovery
	files     *files.Manager
	validator *validation.FileValidator
	now       func() time.Time
}

// Result describes a completed run
type Result struct {
	RunID      string
	RosterPath string
	SignInPath string
	Report     *domain.AttendanceReport
	OutputPath string
	// Fallback is set when the workbook failed and the csv was kept instead
	Fallback bool
}

// NewApplication creates an application writing its report table to stdout
func NewApplication(cfg *config.Config, logger *slog.Logger, stdout io.Writer) *Application {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Application{
		Config:    cfg,
		Logger:    infrastructure.WithComponent(logger, "app"),
		Metrics:   metrics.NewRecorder(),
		Stdout:    stdout,
		discovery: files.NewDiscovery(cfg.Input.Dir, logger),
		files:     files.NewManager(logger),
		validator: validation.NewFileValidator(logger),
		now:       time.Now,
	}
}

// Run executes the pipeline once. Fatal errors are returned before any report
// file is created. A failed workbook write is not an error: the csv is kept
// and Result.Fallback is set.
func (a *Application) Run(ctx context.Context) (*Result, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	started := a.now()

	a.Logger.InfoContext(ctx, "Run started",
		slog.String("name", AppName),
		slog.String("version", contracts.Version),
		slog.String("input_dir", a.Config.Input.Dir),
		slog.String("output_dir", a.Config.Output.Dir))

	result, err := a.run(ctx)
	if err != nil {
		a.Metrics.ObserveFailure(string(apperrors.TypeOf(err)))
		a.Logger.ErrorContext(ctx, "Run failed",
			slog.String("error", err.Error()),
			slog.String("error_type", string(apperrors.TypeOf(err))))
		a.flushMetrics(ctx)
		return nil, err
	}

	finished := a.now()
	a.Metrics.ObserveReport(result.Report.Summary, result.Report.Summary.Present+result.Report.Summary.Absent)
	a.Metrics.ObserveCompletion(started, finished)
	a.flushMetrics(ctx)

	a.Logger.InfoContext(ctx, "Run completed",
		slog.String("output", result.OutputPath),
		slog.Bool("fallback", result.Fallback),
		slog.Int("present", result.Report.Summary.Present),
		slog.Int("absent", result.Report.Summary.Absent),
		slog.Int("unrecognized", result.Report.Summary.Unrecognized),
		slog.Duration("duration", finished.Sub(started)))

	return result, nil
}

func (a *Application) run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: infrastructure.GetTraceID(ctx)}

	if a.Config.Input.RosterFile == "" || a.Config.Input.SignInFile == "" {
		if err := a.validator.ValidateInputDirectory(a.Config.Input.Dir); err != nil {
			return nil, err
		}
	}

	rosterFile, err := a.resolveInput(a.Config.Input.RosterFile, a.Config.Input.RosterPattern)
	if err != nil {
		return nil, err
	}
	signInFile, err := a.resolveInput(a.Config.Input.SignInFile, a.Config.Input.SignInPattern)
	if err != nil {
		return nil, err
	}
	result.RosterPath = rosterFile.Path
	result.SignInPath = signInFile.Path

	r, err := roster.NewLoader(a.Logger).Load(rosterFile.Path)
	if err != nil {
		return nil, err
	}

	normalizer := attendance.NewNormalizer(r, attendance.NormalizerOptions{
		Marker:         a.Config.Input.HeaderMarker,
		SkipBlankNames: a.Config.Matching.SkipBlankNames,
	}, a.Logger)
	resolved, err := normalizer.Load(signInFile.Path)
	if err != nil {
		return nil, err
	}

	result.Report = report.Build(attendance.Classify(r, resolved), r)

	if err := exporter.RenderTable(a.Stdout, result.Report); err != nil {
		return nil, fmt.Errorf("failed to print report: %w", err)
	}
	fmt.Fprintln(a.Stdout)

	if err := a.validator.ValidateOutputDirectory(a.Config.Output.Dir); err != nil {
		return nil, err
	}

	result.OutputPath, result.Fallback, err = a.writeOutputs(ctx, result.Report)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.Stdout, "Saved to %s\n", result.OutputPath)
	return result, nil
}

// resolveInput prefers an explicitly configured file over pattern discovery
func (a *Application) resolveInput(explicit, pattern string) (files.FileInfo, error) {
	var (
		file files.FileInfo
		err  error
	)
	if explicit != "" {
		file, err = a.discovery.ResolveExplicit(explicit)
	} else {
		file, err = a.discovery.ResolveSingle(pattern)
	}
	if err != nil {
		return files.FileInfo{}, err
	}
	if err := a.validator.ValidateInputFile(file.Path); err != nil {
		return files.FileInfo{}, err
	}
	return file, nil
}

// writeOutputs writes the csv first, then the workbook. The csv is removed
// once the workbook is in place unless KeepCSV is set.
func (a *Application) writeOutputs(ctx context.Context, rep *domain.AttendanceReport) (string, bool, error) {
	csvPath := a.Config.CSVPath()
	xlsxPath := a.Config.XLSXPath()

	if err := exporter.NewCSVWriter(a.Logger).WriteReport(csvPath, rep); err != nil {
		return "", false, apperrors.NewOutputError("failed to write csv report", err).
			WithContext("file", csvPath)
	}

	xlsxWriter := exporter.NewXLSXWriter(exporter.XLSXOptions{
		SheetName:         a.Config.Output.SheetName,
		TableName:         a.Config.Output.TableName,
		TableStyle:        a.Config.Output.TableStyle,
		AbsentColor:       a.Config.Output.AbsentColor,
		UnrecognizedColor: a.Config.Output.UnrecognizedColor,
	}, a.Logger)

	if err := xlsxWriter.WriteReport(xlsxPath, rep); err != nil {
		if apperrors.IsFatal(err) {
			return "", false, err
		}
		a.Metrics.ObserveFallback()
		a.Logger.WarnContext(ctx, "Workbook could not be written, keeping csv",
			slog.String("error", err.Error()),
			slog.String("csv", csvPath))
		return csvPath, true, nil
	}

	if !a.Config.Output.KeepCSV {
		if err := a.files.DeleteFile(csvPath); err != nil {
			a.Logger.WarnContext(ctx, "Failed to remove intermediate csv",
				slog.String("csv", csvPath),
				slog.String("error", err.Error()))
		}
	}

	return xlsxPath, false, nil
}

// flushMetrics writes the textfile when configured. Failures are logged only.
func (a *Application) flushMetrics(ctx context.Context) {
	if err := a.Metrics.WriteTextfile(a.Config.Metrics.TextfilePath); err != nil {
		a.Logger.WarnContext(ctx, "Failed to write metrics",
			slog.String("path", a.Config.Metrics.TextfilePath),
			slog.String("error", err.Error()))
	}
}

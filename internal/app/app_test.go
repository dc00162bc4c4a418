package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"attendcli/internal/config"
	apperrors "attendcli/internal/errors"
	"attendcli/internal/infrastructure"
	"attendcli/internal/shared/testutil"
	"attendcli/pkg/contracts/domain"
)

const (
	rosterCSV = "Official Name,Name (Original Name),Coach Name\n" +
		"Alice Smith,alice s,Coach X\n" +
		"Alice Smith,alice s,Coach X\n" +
		"Bob Lee,bobby,Coach Y\n" +
		"Dana Kim,dk,\n"

	signInCSV = "Meeting ID,Topic\n" +
		"123 456 789,Weekly sync\n" +
		"\n" +
		"Name (Original Name),User Email,Join Time\n" +
		"Alice S.,alice@example.com,09:00\n" +
		"bob lee,bob@example.com,09:01\n" +
		"Charlie Doe,charlie@example.com,09:02\n" +
		"zed foo,,09:03\n" +
		"zed foo,,09:04\n"
)

// testConfig returns the default configuration rooted in temp dirs
func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Input.Dir = dir
	cfg.Output.Dir = filepath.Join(dir, "out")
	return cfg, dir
}

func runApp(t *testing.T, cfg *config.Config) (*Result, string, error) {
	t.Helper()
	var stdout bytes.Buffer
	result, err := NewApplication(cfg, nil, &stdout).Run(context.Background())
	return result, stdout.String(), err
}

func TestRun_EndToEnd(t *testing.T) {
	cfg, dir := testConfig(t)
	testutil.WriteFile(t, dir, "expected_participants.csv", rosterCSV)
	testutil.WriteFile(t, dir, "participants_1.csv", signInCSV)

	result, stdout, err := runApp(t, cfg)
	require.NoError(t, err)

	assert.False(t, result.Fallback)
	assert.Equal(t, cfg.XLSXPath(), result.OutputPath)
	assert.NotEmpty(t, result.RunID)
	assert.FileExists(t, cfg.XLSXPath())
	assert.NoFileExists(t, cfg.CSVPath(), "intermediate csv is removed")

	assert.Equal(t, []domain.AttendanceRecord{
		{Index: 1, Name: "Alice Smith", Status: domain.StatusPresent, CoachName: "Coach X"},
		{Index: 2, Name: "Bob Lee", Status: domain.StatusPresent, CoachName: "Coach Y"},
		{Index: 3, Name: "Dana Kim", Status: domain.StatusAbsent},
		{Index: 4, Name: "Charlie Doe", Status: domain.StatusUnrecognized},
		{Index: 5, Name: "Zed Foo", Status: domain.StatusUnrecognized},
		{Index: 6, Name: "Zed Foo", Status: domain.StatusUnrecognized},
	}, result.Report.Records)

	assert.Contains(t, stdout, "Charlie Doe")
	assert.True(t, strings.HasSuffix(stdout, "Saved to "+cfg.XLSXPath()+"\n"))

	f, err := excelize.OpenFile(cfg.XLSXPath())
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, []string{"Name", "Status", "Coach Name"}, rows[0])
	assert.Equal(t, []string{"Alice Smith", "Present", "Coach X"}, rows[1])
}

func TestRun_KeepCSV(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Output.KeepCSV = true
	testutil.WriteFile(t, dir, "expected_participants.csv", rosterCSV)
	testutil.WriteFile(t, dir, "participants_1.csv", signInCSV)

	_, _, err := runApp(t, cfg)
	require.NoError(t, err)
	assert.FileExists(t, cfg.XLSXPath())
	assert.FileExists(t, cfg.CSVPath())
}

func TestRun_WorkbookFailureFallsBackToCSV(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Output.TableName = "not valid"
	testutil.WriteFile(t, dir, "expected_participants.csv", rosterCSV)
	testutil.WriteFile(t, dir, "participants_1.csv", signInCSV)

	logger, logs := testutil.NewTestLogger()
	var out bytes.Buffer
	result, err := NewApplication(cfg, logger, &out).Run(context.Background())
	require.NoError(t, err)
	stdout := out.String()

	rec, ok := logs.Find(slog.LevelWarn, "keeping csv")
	require.True(t, ok)
	assert.Equal(t, cfg.CSVPath(), rec.Attrs["csv"])

	assert.True(t, result.Fallback)
	assert.Equal(t, cfg.CSVPath(), result.OutputPath)
	assert.FileExists(t, cfg.CSVPath())
	assert.NoFileExists(t, cfg.XLSXPath())
	assert.True(t, strings.HasSuffix(stdout, "Saved to "+cfg.CSVPath()+"\n"))

	content, err := os.ReadFile(cfg.CSVPath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "Alice Smith,Present,Coach X")
	assert.Contains(t, string(content), "Zed Foo,Present (Unrecognized Name),")
}

func TestRun_FatalErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    error
		wantOut bool
	}{
		{
			name:  "missing marker",
			files: map[string]string{"expected_participants.csv": rosterCSV, "participants_1.csv": "Name,Email\nAlice,a@x\n"},
			want:  apperrors.ErrHeaderNotFound,
		},
		{
			name:  "no sign-in export",
			files: map[string]string{"expected_participants.csv": rosterCSV},
			want:  apperrors.ErrDiscovery,
		},
		{
			name:  "no roster",
			files: map[string]string{"participants_1.csv": signInCSV},
			want:  apperrors.ErrDiscovery,
		},
		{
			name: "roster under an unexpected name",
			files: map[string]string{
				"roster.txt":         rosterCSV,
				"participants_1.csv": signInCSV,
			},
			want: apperrors.ErrDiscovery,
		},
		{
			name: "roster without alias column",
			files: map[string]string{
				"expected_participants.csv": "Official Name,Coach Name\nAlice Smith,Coach X\n",
				"participants_1.csv":        signInCSV,
			},
			want: apperrors.ErrSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, dir := testConfig(t)
			for name, content := range tt.files {
				testutil.WriteFile(t, dir, name, content)
			}

			result, stdout, err := runApp(t, cfg)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, apperrors.IsFatal(err))

			assert.Empty(t, stdout)
			assert.NoFileExists(t, cfg.XLSXPath())
			assert.NoFileExists(t, cfg.CSVPath())
		})
	}
}

func TestRun_ExplicitFiles(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Input.RosterFile = testutil.WriteFile(t, dir, "roster.csv", rosterCSV)
	cfg.Input.SignInFile = "meeting.csv"
	testutil.WriteFile(t, dir, "meeting.csv", signInCSV)
	// would be picked by discovery if it were used
	testutil.WriteFile(t, dir, "participants_0.csv", "no marker here\n")

	result, _, err := runApp(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "meeting.csv"), result.SignInPath)
	assert.Equal(t, 3, result.Report.Summary.Unrecognized)
}

func TestRun_ExplicitUnsupportedFile(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Input.RosterFile = testutil.WriteFile(t, dir, "roster.txt", rosterCSV)
	testutil.WriteFile(t, dir, "participants_1.csv", signInCSV)

	_, _, err := runApp(t, cfg)
	assert.True(t, errors.Is(err, apperrors.ErrParsing))
	assert.NoFileExists(t, cfg.CSVPath())
}

func TestRun_MissingInputDirectory(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Input.Dir = filepath.Join(dir, "missing")

	_, _, err := runApp(t, cfg)
	assert.True(t, errors.Is(err, apperrors.ErrDiscovery))
}

func TestRun_UnwritableOutputDirectory(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Output.Dir = testutil.WriteFile(t, dir, "out", "")
	cfg.Metrics.TextfilePath = filepath.Join(dir, "attendance.prom")
	testutil.WriteFile(t, dir, "expected_participants.csv", rosterCSV)
	testutil.WriteFile(t, dir, "participants_1.csv", signInCSV)

	result, _, err := runApp(t, cfg)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, apperrors.ErrOutput), "got %v", err)
	assert.True(t, apperrors.IsFatal(err))

	content, err := os.ReadFile(cfg.Metrics.TextfilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `attendance_run_failures_total{type="OUTPUT"} 1`)
}

func TestRun_FirstSortedMatchWins(t *testing.T) {
	cfg, dir := testConfig(t)
	testutil.WriteFile(t, dir, "expected_participants.csv", rosterCSV)
	testutil.WriteFile(t, dir, "participants_a.csv", signInCSV)
	testutil.WriteFile(t, dir, "participants_b.csv", "no marker here\n")

	result, _, err := runApp(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "participants_a.csv"), result.SignInPath)
}

func TestRun_Metrics(t *testing.T) {
	cfg, dir := testConfig(t)
	cfg.Metrics.TextfilePath = filepath.Join(dir, "attendance.prom")
	testutil.WriteFile(t, dir, "expected_participants.csv", rosterCSV)
	testutil.WriteFile(t, dir, "participants_1.csv", signInCSV)

	_, _, err := runApp(t, cfg)
	require.NoError(t, err)

	content, err := os.ReadFile(cfg.Metrics.TextfilePath)
	require.NoError(t, err)
	assert.Contains(t, string(content), `attendance_run_participants{status="Absent"} 1`)
	assert.Contains(t, string(content), `attendance_run_roster_size 3`)
}

func TestRun_Deterministic(t *testing.T) {
	var outputs []string
	for i := 0; i < 2; i++ {
		cfg, dir := testConfig(t)
		testutil.WriteFile(t, dir, "expected_participants.csv", rosterCSV)
		testutil.WriteFile(t, dir, "participants_1.csv", signInCSV)

		_, stdout, err := runApp(t, cfg)
		require.NoError(t, err)
		// the saved path differs per temp dir
		outputs = append(outputs, stdout[:strings.LastIndex(stdout, "Saved to")])
	}
	assert.Equal(t, outputs[0], outputs[1])
}

func TestRun_KeepsTraceID(t *testing.T) {
	cfg, dir := testConfig(t)
	testutil.WriteFile(t, dir, "expected_participants.csv", rosterCSV)
	testutil.WriteFile(t, dir, "participants_1.csv", signInCSV)

	ctx := infrastructure.WithTraceID(context.Background(), "run-42")
	result, err := NewApplication(cfg, nil, &bytes.Buffer{}).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-42", result.RunID)
}

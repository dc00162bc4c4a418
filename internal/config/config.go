package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable, e.g. ATTENDANCE_LOGGING_LEVEL
const EnvPrefix = "ATTENDANCE"

// EnvFiles are read into the process environment before configuration is
// loaded. Variables that are already set are never overwritten, so the first
// file to define a variable wins.
var EnvFiles = []string{".env.local", ".env"}

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Input    InputConfig    `yaml:"input" envconfig:"INPUT"`
	Output   OutputConfig   `yaml:"output" envconfig:"OUTPUT"`
	Matching MatchingConfig `yaml:"matching" envconfig:"MATCHING"`
	Metrics  MetricsConfig  `yaml:"metrics" envconfig:"METRICS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// InputConfig selects the roster and sign-in files. Explicit file paths take
// precedence over pattern discovery in Dir.
type InputConfig struct {
	Dir           string `yaml:"dir" envconfig:"DIR" validate:"required"`
	RosterPattern string `yaml:"roster_pattern" envconfig:"ROSTER_PATTERN" validate:"required"`
	SignInPattern string `yaml:"signin_pattern" envconfig:"SIGNIN_PATTERN" validate:"required"`
	RosterFile    string `yaml:"roster_file" envconfig:"ROSTER_FILE"`
	SignInFile    string `yaml:"signin_file" envconfig:"SIGNIN_FILE"`
	HeaderMarker  string `yaml:"header_marker" envconfig:"HEADER_MARKER" validate:"required"`
}

// OutputConfig controls the generated report artifacts
type OutputConfig struct {
	Dir               string `yaml:"dir" envconfig:"DIR" validate:"required"`
	XLSXName          string `yaml:"xlsx_name" envconfig:"XLSX_NAME" validate:"required,endswith=.xlsx"`
	CSVName           string `yaml:"csv_name" envconfig:"CSV_NAME" validate:"required,endswith=.csv"`
	SheetName         string `yaml:"sheet_name" envconfig:"SHEET_NAME" validate:"required,max=31"`
	TableName         string `yaml:"table_name" envconfig:"TABLE_NAME" validate:"required,alphanum"`
	TableStyle        string `yaml:"table_style" envconfig:"TABLE_STYLE" validate:"required"`
	AbsentColor       string `yaml:"absent_color" envconfig:"ABSENT_COLOR" validate:"hexcolor,len=7"`
	UnrecognizedColor string `yaml:"unrecognized_color" envconfig:"UNRECOGNIZED_COLOR" validate:"hexcolor,len=7"`
	KeepCSV           bool   `yaml:"keep_csv" envconfig:"KEEP_CSV"`
}

// MatchingConfig tunes name reconciliation
type MatchingConfig struct {
	SkipBlankNames bool `yaml:"skip_blank_names" envconfig:"SKIP_BLANK_NAMES"`
}

// MetricsConfig controls the Prometheus textfile export. An empty path disables it.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file. An empty path falls back to
// the usual lookup.
func LoadFile(path string) (*Config, error) {
	loadEnvFiles(EnvFiles...)
	if path == "" {
		path = getConfigFilePath()
	}
	return load(path)
}

// loadEnvFiles loads the dotenv files that exist and returns their names
func loadEnvFiles(files ...string) []string {
	var loaded []string
	for _, file := range files {
		if err := godotenv.Load(file); err == nil {
			loaded = append(loaded, file)
		}
	}
	return loaded
}

func load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without a matching variable are left untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays values present in the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// Validate normalizes and checks the configuration. It must be called again
// after fields are changed by hand.
func (c *Config) Validate() error {
	// Always JSON
	c.Logging.Format = "json"
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)

	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Output.XLSXName == c.Output.CSVName {
		return fmt.Errorf("xlsx and csv output names must differ")
	}

	return nil
}

// XLSXPath returns the full path of the styled report
func (c *Config) XLSXPath() string {
	return filepath.Join(c.Output.Dir, c.Output.XLSXName)
}

// CSVPath returns the full path of the plain-text report
func (c *Config) CSVPath() string {
	return filepath.Join(c.Output.Dir, c.Output.CSVName)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return path
	}

	locations := []string{
		"attendance.yaml",
		"configs/attendance.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/attendance.log",
		},
		Input: InputConfig{
			Dir:           ".",
			RosterPattern: "expected_participants*.csv",
			SignInPattern: "participants_*.csv",
			HeaderMarker:  "Name (Original Name)",
		},
		Output: OutputConfig{
			Dir:               ".",
			XLSXName:          "attendance.xlsx",
			CSVName:           "attendance.csv",
			SheetName:         "Attendance",
			TableName:         "Table1",
			TableStyle:        "TableStyleMedium9",
			AbsentColor:       "#FFFF00",
			UnrecognizedColor: "#FFA500",
		},
	}
}

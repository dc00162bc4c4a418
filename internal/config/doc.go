// Package config provides configuration management for the attendance checker.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// Running with no environment and no file reproduces the standard layout:
// inputs matched by expected_participants*.csv and participants_*.csv in the
// working directory, outputs attendance.xlsx and attendance.csv next to them.
//
// # Environment Variables
//
// All environment variables use the ATTENDANCE_ prefix followed by the
// section and field name:
//
//	ATTENDANCE_INPUT_DIR=/data/week3
//	ATTENDANCE_INPUT_ROSTER_FILE=roster.xlsx
//	ATTENDANCE_OUTPUT_DIR=/data/week3/out
//	ATTENDANCE_MATCHING_SKIP_BLANK_NAMES=true
//	ATTENDANCE_METRICS_TEXTFILE_PATH=/var/lib/node_exporter/attendance.prom
//	ATTENDANCE_LOGGING_LEVEL=debug
//
// ATTENDANCE_CONFIG points at an explicit YAML file. Otherwise attendance.yaml
// and configs/attendance.yaml are tried in that order.
//
// Variables may also be kept in .env.local or .env in the working directory.
// Both are read before the environment is processed and never replace a
// variable that is already set.
//
// # Validation
//
// The merged configuration is validated with struct tags. Invalid values
// abort startup.
package config

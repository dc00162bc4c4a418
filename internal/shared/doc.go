// Package shared holds helpers used by more than one package. The testutil
// subpackage is for tests only: log capture and input fixtures.
package shared

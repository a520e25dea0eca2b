// Package cli turns command-line arguments into an app.Config. Invalid input
// and help requests are reported as *ExitError carrying the process exit code.
package cli

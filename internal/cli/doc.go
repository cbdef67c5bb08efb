// Package cli handles command-line argument parsing and validation for the
// waitgate binary, translating flags into an app.Config.
package cli

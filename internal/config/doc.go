// Package config defines the format-agnostic scenario model for the
// application, along with the Loader interface for reading it from a
// concrete format.
//
// The config.Model is the single source of truth for the app package's
// step loop. Concrete loader implementations, such as for HCL, live in
// separate packages.
package config

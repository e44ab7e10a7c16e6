// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/vitlib/biblio-migrate/internal/common"
	"github.com/vitlib/biblio-migrate/internal/holdings"
)

// SetDefaults registers a default for every configuration key the
// application reads. Call once before any lookup.
func SetDefaults() {
	viper.SetDefault("database.path", "~/.local/share/biblio/biblio.db")
	viper.SetDefault("ingest.batch_size", 5000)

	def := holdings.DefaultOptions()
	viper.SetDefault("holdings.library_code", def.LibraryCode)
	viper.SetDefault("holdings.default_currency", def.DefaultCurrency)
	viper.SetDefault("holdings.currency_codes", def.CurrencyCodes)
	viper.SetDefault("holdings.isbn_prefixes", def.ISBNPrefixes)
	viper.SetDefault("holdings.garbage_literals", def.GarbageLiterals)
	viper.SetDefault("holdings.electronic_hints", def.ElectronicTypeHints)
	viper.SetDefault("holdings.min_raw_length", def.MinRawLength)
}

// Validate checks the loaded configuration for values no run can proceed
// with. Defaults cover every key, so failures here mean an explicit bad
// override in the config file or environment.
func Validate() error {
	if strings.TrimSpace(viper.GetString("database.path")) == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if viper.GetInt("ingest.batch_size") < 1 {
		return fmt.Errorf("%w: ingest.batch_size must be positive", common.ErrInvalidConfig)
	}
	if viper.GetInt("holdings.min_raw_length") < 1 {
		return fmt.Errorf("%w: holdings.min_raw_length must be positive", common.ErrInvalidConfig)
	}
	if strings.TrimSpace(viper.GetString("holdings.library_code")) == "" {
		return fmt.Errorf("%w: holdings.library_code", common.ErrMissingConfig)
	}
	return nil
}

// DatabasePath returns the configured database location with ~ and
// environment variables expanded.
func DatabasePath() string {
	return ExpandPath(viper.GetString("database.path"))
}

// BatchSize returns the configured records-per-commit batch size.
func BatchSize() int {
	return viper.GetInt("ingest.batch_size")
}

// HoldingsOptions builds the holdings classifier options from
// configuration.
func HoldingsOptions() holdings.Options {
	return holdings.Options{
		LibraryCode:         viper.GetString("holdings.library_code"),
		DefaultCurrency:     viper.GetString("holdings.default_currency"),
		CurrencyCodes:       viper.GetStringSlice("holdings.currency_codes"),
		ISBNPrefixes:        viper.GetStringSlice("holdings.isbn_prefixes"),
		GarbageLiterals:     viper.GetStringSlice("holdings.garbage_literals"),
		ElectronicTypeHints: viper.GetStringSlice("holdings.electronic_hints"),
		MinRawLength:        viper.GetInt("holdings.min_raw_length"),
	}
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	switch {
	case path == "":
		return path
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

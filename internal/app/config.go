package app

import (
	"os"
	"path/filepath"

	"go.trai.ch/revive/internal/core/domain"
	"go.trai.ch/zerr"
)

// Config is the watch session configuration consumed by the core.
type Config struct {
	// EntryFile is the program file to run and restart. Required.
	EntryFile string
	// Targets are the paths to watch. Defaults to the working directory.
	Targets []string
	// CWD is the project root. Defaults to the process working directory.
	CWD string
	// Verbose toggles human-readable progress logging.
	Verbose bool
}

// Normalize validates the configuration and makes every path absolute.
// Any failure here is a configuration error: the session does not begin.
func (c *Config) Normalize() error {
	if c.EntryFile == "" {
		return domain.ErrEntryFileRequired
	}

	if c.CWD == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return zerr.Wrap(err, "failed to determine working directory")
		}
		c.CWD = cwd
	}
	abs, err := filepath.Abs(c.CWD)
	if err != nil {
		return zerr.Wrap(err, "failed to resolve working directory")
	}
	c.CWD = abs

	if !filepath.IsAbs(c.EntryFile) {
		c.EntryFile = filepath.Join(c.CWD, c.EntryFile)
	}

	if len(c.Targets) == 0 {
		c.Targets = []string{c.CWD}
	}
	for i, target := range c.Targets {
		if target == "" {
			return zerr.With(zerr.Wrap(domain.ErrInvalidTargets, "failed to normalize targets"), "index", i)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(c.CWD, target)
		}
		if _, err := os.Stat(target); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrTargetNotFound, "failed to normalize targets"), "path", target)
		}
		c.Targets[i] = target
	}

	return nil
}

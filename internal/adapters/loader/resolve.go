package loader

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/revive/internal/core/domain"
	"go.trai.ch/zerr"
)

// ManifestName is the package manifest consulted when the entry is a
// directory.
const ManifestName = "package.json"

// manifest is the subset of the package manifest the resolver needs.
type manifest struct {
	Main string `json:"main"`
}

// Resolve normalizes the configured entry to a concrete source file. A
// directory entry is resolved through its manifest's main field. All
// failures here are configuration errors and fatal at session start.
func (l *Loader) Resolve(entry string) (string, error) {
	if entry == "" {
		return "", domain.ErrEntryFileRequired
	}

	abs, err := filepath.Abs(entry)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve entry path")
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrEntryNotFound, "failed to resolve entry"), "path", abs)
	}

	if !info.IsDir() {
		return abs, nil
	}

	return resolveManifestMain(abs)
}

// resolveManifestMain reads the manifest inside dir and returns the main
// file it declares.
func resolveManifestMain(dir string) (string, error) {
	manifestPath := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrManifestReadFailed, "failed to resolve entry"), "path", manifestPath)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return "", zerr.Wrap(err, domain.ErrManifestReadFailed.Error())
	}
	if m.Main == "" {
		return "", zerr.With(zerr.Wrap(domain.ErrManifestMainMissing, "failed to resolve entry"), "path", manifestPath)
	}

	main := filepath.Join(dir, m.Main)
	if info, err := os.Stat(main); err != nil || info.IsDir() {
		return "", zerr.With(zerr.Wrap(domain.ErrManifestMainMissing, "failed to resolve entry"), "main", main)
	}
	return main, nil
}

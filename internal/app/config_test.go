package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/revive/internal/app"
	"go.trai.ch/revive/internal/core/domain"
)

func TestConfig_Normalize(t *testing.T) {
	root := t.TempDir()
	entry := filepath.Join(root, "entry.go")
	require.NoError(t, os.WriteFile(entry, []byte("package main"), 0o644))
	sub := filepath.Join(root, "src")
	require.NoError(t, os.Mkdir(sub, 0o755))

	tests := []struct {
		name    string
		cfg     app.Config
		wantErr error
		check   func(t *testing.T, cfg app.Config)
	}{
		{
			name:    "missing entry file",
			cfg:     app.Config{CWD: root},
			wantErr: domain.ErrEntryFileRequired,
		},
		{
			name: "defaults targets to cwd",
			cfg:  app.Config{EntryFile: entry, CWD: root},
			check: func(t *testing.T, cfg app.Config) {
				assert.Equal(t, []string{root}, cfg.Targets)
			},
		},
		{
			name: "relative entry joined to cwd",
			cfg:  app.Config{EntryFile: "entry.go", CWD: root},
			check: func(t *testing.T, cfg app.Config) {
				assert.Equal(t, entry, cfg.EntryFile)
			},
		},
		{
			name: "relative target joined to cwd",
			cfg:  app.Config{EntryFile: entry, CWD: root, Targets: []string{"src"}},
			check: func(t *testing.T, cfg app.Config) {
				assert.Equal(t, []string{sub}, cfg.Targets)
			},
		},
		{
			name:    "empty target",
			cfg:     app.Config{EntryFile: entry, CWD: root, Targets: []string{""}},
			wantErr: domain.ErrInvalidTargets,
		},
		{
			name:    "missing target",
			cfg:     app.Config{EntryFile: entry, CWD: root, Targets: []string{"gone"}},
			wantErr: domain.ErrTargetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Normalize()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, tt.cfg)
			}
		})
	}
}

func TestConfig_NormalizeDefaultsCWD(t *testing.T) {
	root := t.TempDir()
	entry := filepath.Join(root, "entry.go")
	require.NoError(t, os.WriteFile(entry, []byte("package main"), 0o644))

	cfg := app.Config{EntryFile: entry}
	require.NoError(t, cfg.Normalize())

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, cfg.CWD)
	assert.Equal(t, []string{cwd}, cfg.Targets)
}

package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/revive/internal/core/domain"
)

func TestRegistry_PutGet(t *testing.T) {
	r := domain.NewRegistry("/project")

	r.Put("/project/entry.go", "")
	r.Put("/project/a.go", "/project/entry.go")

	entry, ok := r.Get("/project/a.go")
	require.True(t, ok)
	assert.Equal(t, "/project/entry.go", entry.Parent)
	assert.True(t, r.Has("/project/entry.go"))
	assert.False(t, r.Has("/project/missing.go"))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Put_FirstParentWins(t *testing.T) {
	r := domain.NewRegistry("/project")

	// b is first pulled in by a, later re-loaded through c. The original
	// cause edge must survive.
	r.Put("/project/b.go", "/project/a.go")
	r.Put("/project/b.go", "/project/c.go")

	entry, ok := r.Get("/project/b.go")
	require.True(t, ok)
	assert.Equal(t, "/project/a.go", entry.Parent)
}

func TestRegistry_RemoveChainFrom(t *testing.T) {
	tests := []struct {
		name        string
		entries     map[string]string // id -> parent
		start       string
		wantRemoved []string
		wantKept    []string
	}{
		{
			name: "removes full parent chain",
			entries: map[string]string{
				"/project/entry.go": "",
				"/project/a.go":     "/project/entry.go",
				"/project/b.go":     "/project/a.go",
			},
			start:       "/project/b.go",
			wantRemoved: []string{"/project/b.go", "/project/a.go", "/project/entry.go"},
		},
		{
			name: "leaves siblings untouched",
			entries: map[string]string{
				"/project/entry.go": "",
				"/project/a.go":     "/project/entry.go",
				"/project/b.go":     "/project/a.go",
				"/project/other.go": "/project/entry.go",
			},
			start:       "/project/b.go",
			wantRemoved: []string{"/project/b.go", "/project/a.go", "/project/entry.go"},
			wantKept:    []string{"/project/other.go"},
		},
		{
			name: "stops at missing parent",
			entries: map[string]string{
				"/project/b.go": "/project/gone.go",
			},
			start:       "/project/b.go",
			wantRemoved: []string{"/project/b.go"},
		},
		{
			name: "tolerates accidental cycles",
			entries: map[string]string{
				"/project/a.go": "/project/b.go",
				"/project/b.go": "/project/a.go",
			},
			start:       "/project/a.go",
			wantRemoved: []string{"/project/a.go", "/project/b.go"},
		},
		{
			name: "walks through immutable entries without removing them",
			entries: map[string]string{
				"/project/vendor/dep/lib.go": "/project/a.go",
				"/project/a.go":              "/project/entry.go",
				"/project/entry.go":          "",
			},
			start:       "/project/vendor/dep/lib.go",
			wantRemoved: []string{"/project/a.go", "/project/entry.go"},
			wantKept:    []string{"/project/vendor/dep/lib.go"},
		},
		{
			name:        "no-op for unknown identity",
			entries:     map[string]string{"/project/a.go": ""},
			start:       "/project/unknown.go",
			wantRemoved: nil,
			wantKept:    []string{"/project/a.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := domain.NewRegistry("/project")
			for id, parent := range tt.entries {
				r.Put(id, parent)
			}

			removed := r.RemoveChainFrom(tt.start)

			assert.Equal(t, tt.wantRemoved, removed)
			for _, id := range tt.wantRemoved {
				assert.False(t, r.Has(id), "expected %s to be removed", id)
			}
			for _, id := range tt.wantKept {
				assert.True(t, r.Has(id), "expected %s to be kept", id)
			}
		})
	}
}

func TestRegistry_Clear_SparesImmutableEntries(t *testing.T) {
	r := domain.NewRegistry("/project")
	r.Put("/project/entry.go", "")
	r.Put("/project/a.go", "/project/entry.go")
	r.Put("/project/vendor/dep/lib.go", "/project/a.go")
	r.Put("/outside/shared.go", "/project/a.go")

	removed := r.Clear()

	assert.Equal(t, []string{"/project/a.go", "/project/entry.go"}, removed)
	assert.True(t, r.Has("/project/vendor/dep/lib.go"))
	assert.True(t, r.Has("/outside/shared.go"))
}

func TestRegistry_Clear_Idempotent(t *testing.T) {
	r := domain.NewRegistry("/project")
	r.Put("/project/entry.go", "")
	r.Put("/project/vendor/dep/lib.go", "/project/entry.go")

	first := r.Clear()
	second := r.Clear()

	assert.Equal(t, []string{"/project/entry.go"}, first)
	assert.Empty(t, second)
	assert.Equal(t, []string{"/project/vendor/dep/lib.go"}, r.IDs())
}

func TestRegistry_Remove_SparesImmutable(t *testing.T) {
	r := domain.NewRegistry("/project")
	r.Put("/project/node_modules/pkg/index.go", "")

	r.Remove("/project/node_modules/pkg/index.go")

	assert.True(t, r.Has("/project/node_modules/pkg/index.go"))
}

func TestRegistry_IsImmutable(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{name: "project file", id: "/project/src/a.go", want: false},
		{name: "project root file", id: "/project/entry.go", want: false},
		{name: "outside root", id: "/elsewhere/lib.go", want: true},
		{name: "vendored", id: "/project/vendor/dep/lib.go", want: true},
		{name: "node_modules", id: "/project/node_modules/pkg/index.go", want: true},
		{name: "parent of root", id: "/lib.go", want: true},
	}

	r := domain.NewRegistry("/project")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.IsImmutable(tt.id))
		})
	}
}

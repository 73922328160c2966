package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root string, rel string, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCollectViolationsFlagsLayerBreaches(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/picks\n\ngo 1.24.0\n")
	writeFile(t, root, "contexts/ops/log/domain/entities/event.go", `package entities

import (
	"time"

	"example.com/picks/contexts/ops/log/adapters/memory"
)

var _ = time.Now
var _ = memory.Store{}
`)
	writeFile(t, root, "contexts/ops/log/application/commands/cmd.go", `package commands

import (
	"github.com/google/uuid"

	"example.com/picks/contexts/ops/log/ports"
	"example.com/picks/contexts/other/svc/domain"
	"example.com/picks/internal/platform/messaging"
)
`)
	writeFile(t, root, "contexts/ops/log/adapters/memory/store.go", `package memory

import (
	"github.com/google/uuid"

	"example.com/picks/contexts/ops/log/application"
)
`)
	writeFile(t, root, "contexts/ops/log/domain/entities/event_test.go", `package entities

import "example.com/picks/internal/platform/config"
`)

	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	require.NoError(t, err)
	require.Equal(t, "example.com/picks", modulePath)

	violations, err := collectViolations(root, modulePath)
	require.NoError(t, err)

	type key struct{ file, imp, rule string }
	got := make([]key, 0, len(violations))
	for _, v := range violations {
		got = append(got, key{v.File, v.Import, v.Rule})
	}
	require.Equal(t, []key{
		{"contexts/ops/log/application/commands/cmd.go", "github.com/google/uuid", "application must not import third-party packages"},
		{"contexts/ops/log/application/commands/cmd.go", "example.com/picks/contexts/other/svc/domain", "cross-module imports are forbidden"},
		{"contexts/ops/log/application/commands/cmd.go", "example.com/picks/internal/platform/messaging", "application import is outside explicit allowlist"},
		{"contexts/ops/log/domain/entities/event.go", "example.com/picks/contexts/ops/log/adapters/memory", "domain import is outside explicit allowlist"},
	}, got)
}

func TestRepositoryRespectsBoundaries(t *testing.T) {
	root := filepath.Join("..", "..")
	modulePath, err := readModulePath(filepath.Join(root, "go.mod"))
	require.NoError(t, err)

	violations, err := collectViolations(root, modulePath)
	require.NoError(t, err)
	require.Empty(t, violations)
}

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/TheLQ/facto-loop-miner-sub001/config"
)

func TestWatcher_ReloadsValidEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cost:\n  turn_cost_unit: 40\n"), 0o644))

	got := make(chan config.Tunables, 16)
	w, err := config.NewWatcher(path, func(t config.Tunables) { got <- t }, nil)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// An invalid edit is skipped; the next valid one arrives.
	require.NoError(t, os.WriteFile(path, []byte("search:\n  strategy: dfs\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("cost:\n  turn_cost_unit: 77\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case tun := <-got:
			require.NoError(t, tun.Validate())
			if tun.Cost.TurnCostUnit == 77 {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	_, err := config.NewWatcher(filepath.Join(t.TempDir(), "nope", "t.yaml"), nil, nil)
	require.Error(t, err)
}

package hook_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/dotbackup/internal/errors"
	"github.com/thoreinstein/dotbackup/internal/hook"
	"github.com/thoreinstein/dotbackup/internal/hook/mocks"
	"github.com/thoreinstein/dotbackup/internal/logging"
)

func testContext(t *testing.T) context.Context {
	return logging.NewContext(context.Background(), logging.ForTest(t))
}

func TestRunner_Run(t *testing.T) {
	m := mocks.NewMockExecutor(t)
	backupDir := t.TempDir()

	m.EXPECT().
		Execute(mock.Anything, "set -ex\necho hi", []string{"BACKUP_DIR=" + backupDir}).
		Return(nil).
		Once()

	r := hook.NewRunner(m)
	require.NoError(t, r.Run(testContext(t), "echo hi", backupDir))
}

func TestRunner_Run_RelativeBackupDir(t *testing.T) {
	m := mocks.NewMockExecutor(t)

	want, err := filepath.Abs("backups")
	require.NoError(t, err)

	m.EXPECT().
		Execute(mock.Anything, mock.Anything, []string{"BACKUP_DIR=" + want}).
		Return(nil)

	r := hook.NewRunner(m)
	require.NoError(t, r.Run(testContext(t), "true", "backups"))
}

func TestRunner_RunAll(t *testing.T) {
	tests := []struct {
		name      string
		hooks     []string
		failAt    int // -1 for no failure
		wantCalls []string
		wantErr   bool
	}{
		{
			name:   "no hooks",
			failAt: -1,
		},
		{
			name:      "all succeed in order",
			hooks:     []string{"one", "two", "three"},
			failAt:    -1,
			wantCalls: []string{"set -ex\none", "set -ex\ntwo", "set -ex\nthree"},
		},
		{
			name:      "stops at first failure",
			hooks:     []string{"one", "two", "three"},
			failAt:    1,
			wantCalls: []string{"set -ex\none", "set -ex\ntwo"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mocks.NewMockExecutor(t)

			var calls []string
			m.EXPECT().
				Execute(mock.Anything, mock.Anything, mock.Anything).
				RunAndReturn(func(_ context.Context, script string, _ []string) error {
					calls = append(calls, script)
					if len(calls)-1 == tt.failAt {
						return &errors.Error{Kind: errors.KindSystem, Err: &hook.ExitError{Code: 9}}
					}
					return nil
				}).
				Maybe()

			r := hook.NewRunner(m)
			err := r.RunAll(testContext(t), tt.hooks, t.TempDir(), "pre_backup hook")

			if tt.wantErr {
				require.Error(t, err)
				var exitErr *hook.ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, 9, exitErr.Code)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

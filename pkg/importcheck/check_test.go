package importcheck

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vertti/importcheck/pkg/check"
	"github.com/vertti/importcheck/pkg/testutil"
)

func TestCheck_Run(t *testing.T) {
	tests := []struct {
		name        string
		importFunc  func(ctx context.Context, name string) (Module, error)
		wantStatus  check.Status
		wantMessage string
		wantKind    string
	}{
		{
			name: "import succeeds",
			importFunc: func(_ context.Context, name string) (Module, error) {
				return Module{Name: name}, nil
			},
			wantStatus: check.StatusOK,
		},
		{
			name: "module not found",
			importFunc: func(_ context.Context, name string) (Module, error) {
				return Module{}, &ImportError{Kind: "ModuleNotFoundError", Message: fmt.Sprintf("No module named '%s'", name)}
			},
			wantStatus:  check.StatusFail,
			wantMessage: "No module named 'torch'",
			wantKind:    "ModuleNotFoundError",
		},
		{
			name: "plain error is wrapped",
			importFunc: func(context.Context, string) (Module, error) {
				return Module{}, errors.New("exec: \"python3\": executable file not found in $PATH")
			},
			wantStatus:  check.StatusFail,
			wantMessage: "exec: \"python3\": executable file not found in $PATH",
			wantKind:    KindRunner,
		},
		{
			name: "wrapped import error is unwrapped",
			importFunc: func(context.Context, string) (Module, error) {
				return Module{}, fmt.Errorf("probe: %w", &ImportError{Kind: "OSError", Message: "libcudart.so.12: cannot open shared object file"})
			},
			wantStatus:  check.StatusFail,
			wantMessage: "libcudart.so.12: cannot open shared object file",
			wantKind:    "OSError",
		},
		{
			name: "panic is recovered",
			importFunc: func(context.Context, string) (Module, error) {
				panic("loader exploded")
			},
			wantStatus:  check.StatusFail,
			wantMessage: "panic: loader exploded",
			wantKind:    KindPanic,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Check{Module: "torch", Importer: ImporterFunc(tt.importFunc)}

			result := c.Run(context.Background())

			assert.Equal(t, "torch", result.Name)
			assert.Equal(t, tt.wantStatus, result.Status)
			if tt.wantStatus == check.StatusOK {
				assert.NoError(t, result.Err)
				return
			}

			var ie *ImportError
			require.ErrorAs(t, result.Err, &ie)
			assert.Equal(t, tt.wantMessage, result.Message())
			assert.Equal(t, tt.wantKind, ie.Kind)
			assert.Equal(t, "torch", ie.Module)
		})
	}
}

func TestCheck_Run_VersionDetail(t *testing.T) {
	c := &Check{
		Module: "onnx",
		Importer: ImporterFunc(func(_ context.Context, name string) (Module, error) {
			return Module{Name: name, Version: "1.16.0", Duration: 1500 * time.Millisecond}, nil
		}),
	}

	result := c.Run(context.Background())

	require.True(t, result.OK())
	assert.True(t, testutil.ContainsDetail(result.Details, "version: 1.16.0"))
	assert.True(t, testutil.ContainsDetail(result.Details, "import took: 1.5s"))
}

func TestCheck_Run_Timeout(t *testing.T) {
	c := &Check{
		Module:  "transformers",
		Timeout: 20 * time.Millisecond,
		Importer: ImporterFunc(func(ctx context.Context, _ string) (Module, error) {
			<-ctx.Done()
			return Module{}, ctx.Err()
		}),
	}

	result := c.Run(context.Background())

	require.False(t, result.OK())
	var ie *ImportError
	require.ErrorAs(t, result.Err, &ie)
	assert.Equal(t, KindTimeout, ie.Kind)
	assert.Equal(t, "import timed out after 20ms", ie.Error())
	assert.ErrorIs(t, result.Err, context.DeadlineExceeded)
}

func TestCheck_Run_DefaultTimeout(t *testing.T) {
	c := &Check{
		Module: "joblib",
		Importer: ImporterFunc(func(ctx context.Context, name string) (Module, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.InDelta(t, DefaultTimeout.Seconds(), time.Until(deadline).Seconds(), 5)
			return Module{Name: name}, nil
		}),
	}

	assert.True(t, c.Run(context.Background()).OK())
}

func TestImportError_Format(t *testing.T) {
	ie := &ImportError{
		Module:    "faiss",
		Kind:      "ImportError",
		Message:   "numpy.core.multiarray failed to import",
		Traceback: "Traceback (most recent call last):\n  File \"<string>\", line 1",
	}

	assert.Equal(t, "numpy.core.multiarray failed to import", fmt.Sprintf("%v", ie))
	assert.Equal(t, "numpy.core.multiarray failed to import", fmt.Sprintf("%s", ie))
	assert.Equal(t, `"numpy.core.multiarray failed to import"`, fmt.Sprintf("%q", ie))
	assert.Equal(t,
		"ImportError: numpy.core.multiarray failed to import\nTraceback (most recent call last):\n  File \"<string>\", line 1",
		fmt.Sprintf("%+v", ie))
}

//go:build unit

package errs_test

import (
	"fmt"
	"testing"

	"hotel-reservation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errLocked   = errs.Define(errs.KindConflict, "LOCKER_LOCKED", "locker is locked")
	errNoLocker = errs.Define(errs.KindNotFound, "LOCKER_NOT_FOUND", "locker not found")
	errStorage  = errs.Define(errs.KindInfrastructure, "LOCKER_STORAGE", "locker storage failed")
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    errs.Kind
		code    string
		message string
	}{
		{
			name:    "sentinel",
			err:     errLocked,
			kind:    errs.KindConflict,
			code:    "LOCKER_LOCKED",
			message: "locker is locked",
		},
		{
			name:    "wrapped",
			err:     errs.Wrap(errNoLocker, "loading locker 7"),
			kind:    errs.KindNotFound,
			code:    "LOCKER_NOT_FOUND",
			message: "locker not found",
		},
		{
			name:    "std wrapped",
			err:     fmt.Errorf("outer: %w", errLocked),
			kind:    errs.KindConflict,
			code:    "LOCKER_LOCKED",
			message: "locker is locked",
		},
		{
			name:    "marked cause",
			err:     errs.Mark(errs.New("pq: lock timeout"), errLocked),
			kind:    errs.KindConflict,
			code:    "LOCKER_LOCKED",
			message: "locker is locked",
		},
		{
			name:    "unclassified",
			err:     errs.New("connection reset by peer"),
			kind:    errs.KindInfrastructure,
			code:    "INFRASTRUCTURE_ERROR",
			message: "Internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, errs.KindOf(tt.err))
			assert.Equal(t, tt.code, errs.CodeOf(tt.err))
			assert.Equal(t, tt.message, errs.PublicMessage(tt.err))
		})
	}

	_, ok := errs.Classify(nil)
	assert.False(t, ok)
}

func TestMark(t *testing.T) {
	cause := errs.New("driver said no")
	marked := errs.Mark(cause, errNoLocker)

	assert.True(t, errs.Is(marked, errNoLocker))
	assert.True(t, errs.Is(marked, cause))
	assert.False(t, errs.Is(marked, errLocked))
	assert.Equal(t, errNoLocker, errs.Mark(nil, errNoLocker))
}

func TestSeal(t *testing.T) {
	cause := errs.Wrap(errLocked, "decoding locker row")
	sealed := errs.Seal(cause, errStorage)

	assert.True(t, errs.Is(sealed, errStorage))
	assert.False(t, errs.Is(sealed, errLocked))
	assert.Equal(t, errs.KindInfrastructure, errs.KindOf(sealed))
	assert.Equal(t, "LOCKER_STORAGE", errs.CodeOf(sealed))
	assert.Contains(t, fmt.Sprintf("%+v", sealed), "decoding locker row")
	assert.Equal(t, errStorage, errs.Seal(nil, errStorage))
}

func TestDetails(t *testing.T) {
	err := errs.WithDetail(errs.WithDetail(errLocked, "locker 7"), "held by guest 3")

	assert.ElementsMatch(t, []string{"locker 7", "held by guest 3"}, errs.Details(err))
	assert.Empty(t, errs.Details(errLocked))
	assert.Nil(t, errs.WithDetail(nil, "ignored"))
	assert.Nil(t, errs.Wrap(nil, "ignored"))
}

func TestExtractStackLines(t *testing.T) {
	lines := errs.ExtractStackLines(errs.Wrap(errs.New("boom"), "context"), 3)

	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "context")
	assert.Nil(t, errs.ExtractStackLines(nil, 3))
}

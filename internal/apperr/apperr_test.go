package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOfWrappedError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := Wrap(KindStore, "could not read Debts", cause)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindStore, kind)
	assert.True(t, errors.Is(err, cause), "the cause stays reachable for the log")

	// classification survives further wrapping
	outer := fmt.Errorf("sync: %w", err)
	assert.True(t, Is(outer, KindStore))
	assert.False(t, Is(outer, KindBusy))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "the workbook is busy", Summary(New(KindBusy, "the workbook is busy")))
	assert.Equal(t, "an unexpected error occurred", Summary(errors.New("sqlite3: misuse")))
}

func TestErrorString(t *testing.T) {
	err := Wrap(KindDocument, "could not open the workbook", errors.New("no such file"))
	assert.Contains(t, err.Error(), "document")
	assert.Contains(t, err.Error(), "no such file")

	bare := New(KindValidation, "Amount is required")
	assert.Equal(t, "validation: Amount is required", bare.Error())
}

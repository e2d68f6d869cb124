package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionRequiresBulkMode(t *testing.T) {
	s := NewSelectionSet()

	s.Toggle("a")
	assert.Empty(t, s.IDs(), "toggles outside bulk mode are ignored")

	s.EnterBulkMode()
	s.Toggle("a")
	s.Toggle("b")
	assert.Equal(t, []string{"a", "b"}, s.IDs())
}

func TestSelectionToggleFlips(t *testing.T) {
	s := NewSelectionSet()
	s.EnterBulkMode()

	s.Toggle("a")
	s.Toggle("b")
	s.Toggle("a")
	assert.Equal(t, []string{"b"}, s.IDs())

	s.Toggle("a")
	assert.Equal(t, []string{"b", "a"}, s.IDs(), "re-checking appends at the end")
	assert.Equal(t, 2, s.Len())
}

func TestExitBulkModeDropsSelection(t *testing.T) {
	s := NewSelectionSet()
	s.EnterBulkMode()
	s.Toggle("a")

	s.ExitBulkMode()
	assert.False(t, s.BulkMode())
	assert.Empty(t, s.IDs())

	// Clear keeps bulk mode on, for page-change resets.
	s.EnterBulkMode()
	s.Toggle("b")
	s.Clear()
	assert.True(t, s.BulkMode())
	assert.Empty(t, s.IDs())
}

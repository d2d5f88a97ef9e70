package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isoflow/diagram"
)

func titled(title string) diagram.Model {
	m := diagram.NewModel(title)
	m.Items = []diagram.ModelItem{{ID: "a", Name: title}}
	return m
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(10)
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, h.Save(titled(title)))
	}
	cur, total := h.Stats()
	assert.Equal(t, 3, cur)
	assert.Equal(t, 3, total)

	m, ok, err := h.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "two", m.Title)
	assert.Equal(t, "two", m.Items[0].Name)

	m, ok, _ = h.Undo()
	require.True(t, ok)
	assert.Equal(t, "one", m.Title)

	_, ok, _ = h.Undo()
	assert.False(t, ok, "cannot undo past the first snapshot")

	m, ok, _ = h.Redo()
	require.True(t, ok)
	assert.Equal(t, "two", m.Title)
}

func TestHistorySaveDropsRedoTail(t *testing.T) {
	h := NewHistory(10)
	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, h.Save(titled(title)))
	}
	_, _, _ = h.Undo()
	_, _, _ = h.Undo()
	require.NoError(t, h.Save(titled("branch")))

	assert.False(t, h.CanRedo())
	cur, total := h.Stats()
	assert.Equal(t, 2, cur)
	assert.Equal(t, 2, total)

	m, ok, _ := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "one", m.Title)
}

func TestHistoryRingOverwritesOldest(t *testing.T) {
	h := NewHistory(3)
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		require.NoError(t, h.Save(titled(title)))
	}
	_, total := h.Stats()
	assert.Equal(t, 3, total)

	var titles []string
	for h.CanUndo() {
		m, _, err := h.Undo()
		require.NoError(t, err)
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"four", "three"}, titles)

	for h.CanRedo() {
		_, _, _ = h.Redo()
	}
	m, _, _ := h.Undo()
	assert.Equal(t, "four", m.Title)
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(0)
	require.NoError(t, h.Save(titled("one")))
	require.NoError(t, h.Save(titled("two")))
	h.Clear()
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	cur, total := h.Stats()
	assert.Zero(t, cur)
	assert.Zero(t, total)
}

func TestHistorySnapshotsAreIndependent(t *testing.T) {
	h := NewHistory(5)
	m := titled("one")
	require.NoError(t, h.Save(m))
	require.NoError(t, h.Save(titled("two")))
	m.Items[0].Name = "mutated"

	got, ok, err := h.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one", got.Items[0].Name)
}

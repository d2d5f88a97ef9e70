package store

import (
	"testing"
	"time"

	"isoflow/diagram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func TestNewNormalizesEmptyModel(t *testing.T) {
	s := New(diagram.Model{Title: "x"})
	m := s.Model()
	require.Len(t, m.Views, 1)
	assert.Equal(t, m.Views[0].ID, m.CurrentViewID)
	assert.NotNil(t, m.Items)
}

func TestDeleteLastViewFails(t *testing.T) {
	s := New(diagram.NewModel("doc"))
	before := s.Model()
	rev := s.Revision()

	err := s.DeleteView(before.Views[0].ID)
	require.ErrorIs(t, err, ErrLastView)
	assert.Equal(t, before, s.Model())
	assert.Equal(t, rev, s.Revision())
}

func TestAddAndDeleteView(t *testing.T) {
	s := New(diagram.NewModel("doc"), WithClock(fixedClock()))
	first := s.Model().Views[0].ID

	id := s.AddView("")
	m := s.Model()
	require.Len(t, m.Views, 2)
	assert.Equal(t, "View 2", m.Views[1].Name)
	assert.Equal(t, "2024-05-01T12:00:00Z", m.Views[1].LastUpdated)

	require.NoError(t, s.SetCurrentView(id))
	require.NoError(t, s.DeleteView(id))
	assert.Equal(t, first, s.Model().CurrentViewID)

	assert.ErrorIs(t, s.DeleteView("nope"), ErrLastView)
}

func TestDeleteUnknownView(t *testing.T) {
	s := New(diagram.NewModel("doc"))
	s.AddView("second")
	assert.ErrorIs(t, s.DeleteView("nope"), ErrUnknownView)
}

func TestUpdateViewKeepsID(t *testing.T) {
	s := New(diagram.NewModel("doc"), WithClock(fixedClock()))
	id := s.Model().Views[0].ID

	err := s.UpdateView(id, func(v *diagram.View) {
		v.ID = "hijack"
		v.Name = "Renamed"
	})
	require.NoError(t, err)
	v, ok := s.Model().View(id)
	require.True(t, ok)
	assert.Equal(t, "Renamed", v.Name)
	assert.Equal(t, "2024-05-01T12:00:00Z", v.LastUpdated)

	assert.ErrorIs(t, s.UpdateView("missing", func(*diagram.View) {}), ErrUnknownView)
}

func TestReorderViews(t *testing.T) {
	s := New(diagram.NewModel("doc"))
	a := s.Model().Views[0].ID
	b := s.AddView("b")

	require.NoError(t, s.ReorderViews([]string{b, a}))
	assert.Equal(t, b, s.Model().Views[0].ID)

	assert.Error(t, s.ReorderViews([]string{b, b}))
	assert.Error(t, s.ReorderViews([]string{a}))
}

func TestSetViewsRejectsEmpty(t *testing.T) {
	s := New(diagram.NewModel("doc"))
	assert.ErrorIs(t, s.SetViews(nil), ErrNoViews)
	assert.Len(t, s.Model().Views, 1)
}

func TestSubscribeSeesRevisions(t *testing.T) {
	s := New(diagram.NewModel("doc"))
	var seen []uint64
	s.Subscribe(func(rev uint64) { seen = append(seen, rev) })

	s.SetTitle("one")
	s.SetDocumentName("two")
	assert.Equal(t, []uint64{1, 2}, seen)
	assert.Equal(t, "one", s.Model().Title)
	assert.Equal(t, "two", s.Model().DocumentName)
}

func TestReplaceViewDoesNotAliasPrevious(t *testing.T) {
	s := New(diagram.NewModel("doc"))
	before := s.Model()
	v := before.Views[0].Clone()
	v.Name = "changed"
	require.NoError(t, s.ReplaceView(v))

	assert.Equal(t, "View 1", before.Views[0].Name)
	assert.Equal(t, "changed", s.Model().Views[0].Name)
}

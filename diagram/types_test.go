package diagram

import (
	"encoding/json"
	"testing"

	"isoflow/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleModel() Model {
	m := NewModel("Network")
	m.Items = append(m.Items, ModelItem{ID: "a", Name: "Server"}, ModelItem{ID: "b", Name: "DB"})
	v := &m.Views[0]
	v.Items = append(v.Items, NewViewItem("a", geometry.Tile{}), NewViewItem("b", geometry.Tile{X: 3}))
	v.Connectors = append(v.Connectors, NewConnector("c1", "color1", []Anchor{
		{ID: "x", Ref: ItemRef("a")},
		{ID: "y", Ref: TileRef(geometry.Tile{X: 3, Y: 2})},
	}))
	return m
}

func TestNewModelHasOneView(t *testing.T) {
	m := NewModel("")
	require.Len(t, m.Views, 1)
	assert.Equal(t, DefaultTitle, m.Title)
	assert.Equal(t, m.Views[0].ID, m.CurrentViewID)
	assert.Equal(t, "View 1", m.Views[0].Name)
	assert.Equal(t, "color1", m.DefaultColorID())
}

func TestModelCloneIsDeep(t *testing.T) {
	original := sampleModel()
	clone := original.Clone()

	clone.Views[0].Items[0].Tile = geometry.Tile{X: 9, Y: 9}
	clone.Views[0].Connectors[0].Anchors[1].Ref.Tile.X = 42
	clone.Items[0].Name = "changed"

	assert.Equal(t, geometry.Tile{}, original.Views[0].Items[0].Tile)
	assert.Equal(t, 3, original.Views[0].Connectors[0].Anchors[1].Ref.Tile.X)
	assert.Equal(t, "Server", original.Items[0].Name)
}

func TestConnectorDefaults(t *testing.T) {
	c := Connector{ID: "c"}
	assert.True(t, c.ShowTextFrame())
	assert.Equal(t, DefaultTextOffset, c.LabelOffset())
	assert.Equal(t, ArrowsTo, c.ArrowStyle())

	frame, offset := false, 0.0
	c.TextFrame, c.TextOffset = &frame, &offset
	assert.False(t, c.ShowTextFrame())
	assert.Equal(t, 0.0, c.LabelOffset())
}

func TestAnchorRefJSONOmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(Anchor{ID: "a1", Ref: ItemRef("node")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a1","ref":{"item":"node"}}`, string(data))
}

func TestTextBoxBounds(t *testing.T) {
	tb := NewTextBox("t", geometry.Tile{X: 1, Y: 1})
	tb.Size.Width = 3
	assert.Equal(t, geometry.Tile{X: 4, Y: 1}, tb.EndTile())

	tb.Orientation = OrientationY
	assert.Equal(t, geometry.Region{From: geometry.Tile{X: 1, Y: -2}, To: geometry.Tile{X: 1, Y: 1}}, tb.Bounds())
}

func TestLookups(t *testing.T) {
	m := sampleModel()
	v, ok := m.CurrentView()
	require.True(t, ok)

	_, ok = v.Item("b")
	assert.True(t, ok)
	assert.Equal(t, -1, v.ItemIndex("missing"))

	c, a, ok := v.FindAnchor("y")
	require.True(t, ok)
	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, 3, a.Ref.Tile.X)

	m.CurrentViewID = "gone"
	fallback, ok := m.CurrentView()
	require.True(t, ok)
	assert.Equal(t, m.Views[0].ID, fallback.ID)
}

func TestEnsureAnchorIDs(t *testing.T) {
	m := sampleModel()
	anchors := m.Views[0].Connectors[0].Anchors
	anchors[0].ID = ""
	anchors[1].ID = ""
	EnsureAnchorIDs(&m)

	assert.NotEmpty(t, anchors[0].ID)
	assert.NotEmpty(t, anchors[1].ID)
	assert.NotEqual(t, anchors[0].ID, anchors[1].ID)
}

func TestStyleValidation(t *testing.T) {
	assert.True(t, StyleDashed.Valid())
	assert.False(t, ConnectorStyle("WAVY").Valid())
	assert.True(t, ArrowsNone.Valid())
	assert.False(t, ArrowStyle("sideways").Valid())
}

package document

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isoflow/diagram"
	"isoflow/geometry"
	"isoflow/scene"
)

func sample() diagram.Model {
	m := diagram.NewModel("Network")
	m.Items = []diagram.ModelItem{{ID: "web", Name: "Web"}, {ID: "db", Name: "Database"}}
	v := &m.Views[0]
	v.Items = []diagram.ViewItem{
		diagram.NewViewItem("web", geometry.Tile{X: 0, Y: 0}),
		diagram.NewViewItem("db", geometry.Tile{X: 4, Y: 2}),
	}
	v.Connectors = []diagram.Connector{diagram.NewConnector("c1", "color1", []diagram.Anchor{
		{ID: "a1", Ref: diagram.ItemRef("web")},
		{ID: "a2", Ref: diagram.TileRef(geometry.Tile{X: 4, Y: 0})},
		{ID: "a3", Ref: diagram.ItemRef("db")},
	})}
	v.Rectangles = []diagram.Rectangle{{ID: "r1", Color: "color2", From: geometry.Tile{X: -1, Y: -1}, To: geometry.Tile{X: 5, Y: 3}}}
	v.TextBoxes = []diagram.TextBox{diagram.NewTextBox("t1", geometry.Tile{X: 0, Y: 4})}
	return m
}

func TestCodecRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			m := sample()
			data, err := EncodeBytes(m, format)
			require.NoError(t, err)

			got, err := DecodeBytes(data, format)
			require.NoError(t, err)
			assert.Equal(t, m, got)
			assert.NoError(t, Validate(got))
		})
	}
}

func TestDecodeFillsDefaults(t *testing.T) {
	doc := `{
		"title": "",
		"items": [{"id": "a", "name": "A"}],
		"views": [{
			"id": "v1", "name": "Main",
			"items": [{"id": "a", "tile": {"x": 1, "y": 2}}],
			"connectors": [{"id": "c", "anchors": [{"ref": {"item": "a"}}, {"ref": {"tile": {"x": 3, "y": 2}}}]}],
			"textBoxes": [{"id": "t", "tile": {"x": 0, "y": 0}, "content": "hi"}]
		}]
	}`
	m, err := Decode(strings.NewReader(doc), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, diagram.DefaultTitle, m.Title)
	assert.Equal(t, "v1", m.CurrentViewID)
	assert.Len(t, m.Colors, len(diagram.DefaultColors))
	assert.Equal(t, diagram.DefaultItemSize, m.Views[0].Items[0].Size)
	assert.Equal(t, diagram.OrientationX, m.Views[0].TextBoxes[0].Orientation)
	for _, a := range m.Views[0].Connectors[0].Anchors {
		assert.NotEmpty(t, a.ID)
	}
	assert.NoError(t, Validate(m))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := DecodeBytes([]byte("{"), FormatJSON)
	assert.Error(t, err)
	_, err = DecodeBytes([]byte("views: [oops"), FormatYAML)
	assert.Error(t, err)
	_, err = DecodeBytes([]byte("{}"), Format("xml"))
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	m := sample()
	v := &m.Views[0]
	v.Items = append(v.Items, diagram.NewViewItem("ghost", geometry.Tile{X: 9, Y: 9}))
	v.Rectangles = append(v.Rectangles, diagram.Rectangle{ID: "flat", From: geometry.Tile{X: 1, Y: 1}, To: geometry.Tile{X: 1, Y: 1}})
	v.Connectors = append(v.Connectors,
		diagram.NewConnector("short", "", []diagram.Anchor{{ID: "s1", Ref: diagram.ItemRef("web")}}),
		diagram.NewConnector("lost", "", []diagram.Anchor{
			{ID: "l1", Ref: diagram.ItemRef("nobody")},
			{ID: "l2", Ref: diagram.AnchorRef{Anchor: "l2"}},
		}),
	)
	m.Items = append(m.Items, diagram.ModelItem{ID: "r1", Icon: "missing"})
	m.CurrentViewID = "elsewhere"

	err := Validate(m)
	require.Error(t, err)
	problems := Problems(err)

	paths := make([]string, len(problems))
	for i, p := range problems {
		paths[i] = p.Path
	}
	assert.ElementsMatch(t, []string{
		"currentViewId",
		"items[r1]",
		"views[0].items[ghost]",
		"views[0].rectangles[r1]",
		"views[0].rectangles[flat]",
		"views[0].connectors[short]",
		"views[0].connectors[lost].anchors[l1]",
		"views[0].connectors[lost].anchors[l2]",
	}, paths)

	var invalid *scene.InvalidAnchorError
	assert.False(t, errors.As(err, &invalid), "anchor errors are reported as messages")
}

func TestValidateNoViews(t *testing.T) {
	m := sample()
	m.Views = nil
	m.CurrentViewID = ""
	problems := Problems(Validate(m))
	require.Len(t, problems, 1)
	assert.Equal(t, "views", problems[0].Path)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, name := range []string{"doc.json", "nested/doc.yaml"} {
		t.Run(name, func(t *testing.T) {
			fs := NewFileStore(filepath.Join(dir, name))
			assert.False(t, fs.Exists())

			require.NoError(t, fs.Save(ctx, sample()))
			assert.True(t, fs.Exists())
			_, err := os.Stat(fs.Path() + ".tmp")
			assert.True(t, os.IsNotExist(err))

			got, err := fs.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, sample().Title, got.Title)
			assert.Len(t, got.Views[0].Connectors, 1)
		})
	}
}

func TestFileStoreRejectsInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"title":"x","views":[]}`), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one view")
}

func TestFileStoreLockContention(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	holder := NewFileStore(path)
	unlock, err := holder.acquire(context.Background())
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = NewFileStore(path).Save(ctx, sample())
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("a/b.YML"))
	assert.Equal(t, FormatYAML, FormatForPath("b.yaml"))
	assert.Equal(t, FormatJSON, FormatForPath("b.json"))
	assert.Equal(t, FormatJSON, FormatForPath("b"))

	f, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	_, err = ParseFormat("toml")
	assert.Error(t, err)
}

func TestEncodeIsIndented(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sample(), FormatJSON))
	assert.Contains(t, buf.String(), "\n  \"title\": \"Network\"")
}

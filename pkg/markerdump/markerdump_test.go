package markerdump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/copyproblem/pkg/diagnostic"
	"github.com/dkoosis/copyproblem/pkg/document"
	"github.com/dkoosis/copyproblem/pkg/locate"
	"github.com/dkoosis/copyproblem/pkg/problem"
)

const sample = `{
  "path": "src/Main.kt",
  "markers": [
    {"start": 0, "end": 10, "kind": "diagnostic", "severity": "WEAK_WARNING",
     "tooltip": "<html><body>Unused import directive</body></html>"},
    {"start": 16, "end": 20, "kind": "text", "value": "Plain warning"},
    {"start": 30, "end": 31, "kind": "opaque", "value": "HighlightInfo@1f"},
    {"start": 40, "end": 45}
  ]
}`

func TestRead_Sample(t *testing.T) {
	d, err := ReadBytes([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "src/Main.kt", d.Path)
	require.Len(t, d.Markers, 4)
	require.NotNil(t, d.Markers[0].Severity)
	assert.Equal(t, diagnostic.WeakWarning, *d.Markers[0].Severity)
}

func TestRead_Rejects(t *testing.T) {
	_, err := ReadBytes([]byte(`{"path":"a"}`))
	assert.ErrorContains(t, err, "missing markers")

	_, err = ReadBytes([]byte(`{"markers":[{"start":1,"end":2,"kind":"weird"}]}`))
	assert.ErrorContains(t, err, "unknown kind")

	_, err = ReadBytes([]byte(`not json`))
	assert.Error(t, err)
}

func TestIsMarkerDump(t *testing.T) {
	assert.True(t, IsMarkerDump([]byte(sample)))
	assert.False(t, IsMarkerDump([]byte(`{"version":"2.1.0","runs":[]}`)))
	assert.False(t, IsMarkerDump([]byte(`Main.kt`)))
}

func TestLocate_Payloads(t *testing.T) {
	d, err := ReadBytes([]byte(sample))
	require.NoError(t, err)

	markers := d.Locate()
	require.Len(t, markers, 4)

	rec, ok := markers[0].Payload.(diagnostic.Record)
	require.True(t, ok)
	assert.Equal(t, "Unused import directive", diagnostic.ExtractText(rec))
	assert.Equal(t, "Plain warning", markers[1].Payload)
	assert.Equal(t, Opaque{Value: "HighlightInfo@1f"}, markers[2].Payload)
	assert.Nil(t, markers[3].Payload)
}

func TestLocate_EndToEndRecords(t *testing.T) {
	doc, err := document.FromString("src/Main.kt", "import a.b\nval x = 1\nval y = 2\nfun f() = 3\nok\n")
	require.NoError(t, err)
	d, err := ReadBytes([]byte(sample))
	require.NoError(t, err)
	b := problem.NewBuilder(nil)

	m, _, ok := locate.Locate(d.Locate(), 5, locate.Options{})
	require.True(t, ok)
	info := b.Build(m, doc, "Main.kt")
	assert.Equal(t, "Unused import directive", info.Description)
	assert.Equal(t, diagnostic.WeakWarning, info.Severity)

	m, _, ok = locate.Locate(d.Locate(), 30, locate.Options{})
	require.True(t, ok)
	info = b.Build(m, doc, "Main.kt")
	assert.Equal(t, "HighlightInfo@1f", info.Description)
	assert.Equal(t, diagnostic.Warning, info.Severity)
}

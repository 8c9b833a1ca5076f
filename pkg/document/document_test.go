package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "package main\n\nimport \"fmt\"\r\nfunc main() {}\n"

func mustDoc(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := FromString("src/Main.kt", text)
	require.NoError(t, err)
	return doc
}

func TestDocument_LineOf(t *testing.T) {
	doc := mustDoc(t, sample)
	assert.Equal(t, 0, doc.LineOf(0))
	assert.Equal(t, 0, doc.LineOf(12)) // the newline itself
	assert.Equal(t, 1, doc.LineOf(13))
	assert.Equal(t, 2, doc.LineOf(14))
	assert.Equal(t, 3, doc.LineOf(28))
	assert.Equal(t, 4, doc.LineOf(doc.Len()))
	assert.Equal(t, 0, doc.LineOf(-5))
	assert.Equal(t, 4, doc.LineOf(10_000))
}

func TestDocument_LineText(t *testing.T) {
	doc := mustDoc(t, sample)
	assert.Equal(t, "package main", doc.LineText(0))
	assert.Equal(t, "", doc.LineText(1))
	assert.Equal(t, `import "fmt"`, doc.LineText(2), "CR is stripped")
	assert.Equal(t, "func main() {}", doc.LineText(3))
	assert.Equal(t, "", doc.LineText(4))
	assert.Equal(t, "", doc.LineText(99))
}

func TestDocument_MultibyteOffsets(t *testing.T) {
	doc := mustDoc(t, "val π = 3\nval ä = 1\n")
	assert.Equal(t, 10, doc.Offset(2, 1))
	assert.Equal(t, "ä", doc.Slice(14, 15))
	assert.Equal(t, 1, doc.LineOf(14))
}

func TestDocument_Offset(t *testing.T) {
	doc := mustDoc(t, "abc\ndefgh\n")
	assert.Equal(t, 0, doc.Offset(1, 1))
	assert.Equal(t, 2, doc.Offset(1, 3))
	assert.Equal(t, 3, doc.Offset(1, 50), "clamped to line end")
	assert.Equal(t, 4, doc.Offset(2, 0))
	assert.Equal(t, 7, doc.Offset(2, 4))
	assert.Equal(t, 10, doc.Offset(9, 1))
}

func TestDocument_UTF16Offsets(t *testing.T) {
	// The emoji is one rune but two UTF-16 code units.
	doc := mustDoc(t, "// 😀 hi\nval x = 1\n")
	assert.Equal(t, 3, doc.FromUTF16(3))
	assert.Equal(t, 4, doc.FromUTF16(4), "inside the surrogate pair")
	assert.Equal(t, 5, doc.FromUTF16(6))
	assert.Equal(t, "hi", doc.Slice(doc.FromUTF16(6), doc.FromUTF16(8)))
	assert.Equal(t, doc.Len(), doc.FromUTF16(1_000))
	assert.Equal(t, 0, doc.FromUTF16(-1))

	assert.Equal(t, 5, doc.OffsetUTF16(1, 7))
	assert.Equal(t, 7, doc.OffsetUTF16(1, 50), "clamped to line end")
	assert.Equal(t, 12, doc.OffsetUTF16(2, 5))
	assert.Equal(t, doc.Offset(2, 5), doc.OffsetUTF16(2, 5), "ASCII lines agree")
}

func TestDocument_NameAndPath(t *testing.T) {
	doc := mustDoc(t, "")
	assert.Equal(t, "Main.kt", doc.Name())
	assert.Equal(t, "src/Main.kt", doc.Path())
	assert.Equal(t, 1, doc.LineCount())
	assert.Equal(t, 0, doc.LineOf(3))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.go")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\n"), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "y", doc.LineText(1))

	_, err = Load(filepath.Join(t.TempDir(), "missing.go"))
	assert.Error(t, err)
}

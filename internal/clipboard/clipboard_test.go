package clipboard

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_PrintsAndRemembers(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Write("In file A.kt - x (Line № 1)"))
	require.NoError(t, w.Write("two\n"))

	assert.Equal(t, "In file A.kt - x (Line № 1)\ntwo\n", buf.String())
	got, err := w.Read()
	require.NoError(t, err)
	assert.Equal(t, "two\n", got)
}

func TestMemory_RecordsWrites(t *testing.T) {
	m := NewMemory("old")

	got, _ := m.Read()
	assert.Equal(t, "old", got)

	require.NoError(t, m.Write("new"))
	got, _ = m.Read()
	assert.Equal(t, "new", got)
	assert.Equal(t, []string{"new"}, m.Writes())
}

func TestMemory_FailWith(t *testing.T) {
	m := NewMemory("keep")
	m.FailWith(errors.New("locked"))

	assert.EqualError(t, m.Write("x"), "locked")
	got, _ := m.Read()
	assert.Equal(t, "keep", got)
	assert.Empty(t, m.Writes())
}

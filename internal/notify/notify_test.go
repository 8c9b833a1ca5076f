package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/copyproblem/pkg/render"
)

func TestTerminal_PlainWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminal(&buf, render.DefaultTheme())

	n.Notify(Notification{Title: "Problem copied", Body: "In file A.kt - x (Line № 3)", Level: Info})
	n.Notify(Notification{Title: "Line copied"})

	assert.Equal(t, "Problem copied: In file A.kt - x (Line № 3)\nLine copied\n", buf.String())
}

func TestTerminal_StyledFormat(t *testing.T) {
	n := &Terminal{theme: render.MonoTheme(), styled: true}

	assert.Equal(t, "x Error Failed to copy: boom", n.format(Notification{Title: "Error", Body: "Failed to copy: boom", Level: Error}))
	assert.Equal(t, "+ Done", n.format(Notification{Title: "Done"}))
}

func TestRecorder(t *testing.T) {
	var r Recorder
	_, ok := r.Last()
	assert.False(t, ok)

	r.Notify(Notification{Title: "a"})
	r.Notify(Notification{Title: "b", Level: Warning})

	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, "b", last.Title)
	assert.Len(t, r.All(), 2)
	assert.Equal(t, "warning", Warning.String())
}

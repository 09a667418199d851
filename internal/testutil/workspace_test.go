package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWorkspace(t *testing.T) {
	ws := NewWorkspace(t)

	assert.DirExists(t, ws.Current)
	assert.DirExists(t, ws.Updated)
	assert.NoDirExists(t, ws.Output)
	assert.Equal(t, ws.Root, filepath.Dir(ws.Output))
}

func TestPutAndRead(t *testing.T) {
	ws := NewWorkspace(t)

	Put(t, ws.Output, "fr.json", `{"a": "b"}`)

	assert.DirExists(t, ws.Output)
	assert.Equal(t, `{"a": "b"}`, Read(t, ws.Output, "fr.json"))
}

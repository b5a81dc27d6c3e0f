package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMod(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(11, Mod(-1, 12))
	assert.Equal(0, Mod(-24, 12))
	assert.Equal(2, Mod(14, 12))
}

func TestGetKeys(t *testing.T) {
	keys := GetKeys(map[string]int{"G": 1, "C": 2, "Eb": 3})
	assert.Equal(t, []string{"C", "Eb", "G"}, keys)
}

func TestFirstPositive(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(40, FirstPositive(0, 40, 38))
	assert.Equal(0, FirstPositive(-1, 0))
	assert.Equal(6, Sum([]int{1, 2, 3}))
}

func TestJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "list.json")
	assert := assert.New(t)
	assert.False(FileExists(path))
	assert.NoError(CreateJSON(path, []int{1, 2}))
	assert.True(FileExists(path))

	res, err := ReadJSON[[]int](path)
	assert.NoError(err)
	assert.Equal([]int{1, 2}, res)
}

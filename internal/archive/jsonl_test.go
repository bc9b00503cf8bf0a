package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONL_SkipsBlankAndMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.jsonl")
	content := `{"a":1}` + "\n\n" + `{broken` + "\n" + `{"b":2}` + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.JSONEq(t, `{"a":1}`, string(got[0]))
	assert.JSONEq(t, `{"b":2}`, string(got[1]))
}

func TestReadJSONL_LongLine(t *testing.T) {
	long := strings.Repeat("x", 200*1024)
	path := filepath.Join(t.TempDir(), "long.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"instructions":"`+long+`"}`+"\n"), 0o644))

	got, err := readJSONL(path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWriteJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	records := []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"b":2}`)}

	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", string(data))

	again, err := readJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, records, again)
}

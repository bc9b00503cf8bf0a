package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/recipebox/internal/gateway"
	"github.com/mesh-intelligence/recipebox/internal/sqlite"
	"github.com/mesh-intelligence/recipebox/pkg/types"
)

func newGateway(t *testing.T) *gateway.Gateway {
	t.Helper()
	b, err := sqlite.Open(context.Background(), types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return gateway.New(b)
}

func listAll(t *testing.T, gw types.Gateway) []types.Recipe {
	t.Helper()
	seq, err := gw.List(context.Background())
	require.NoError(t, err)
	got, err := types.Collect(seq)
	require.NoError(t, err)
	return got
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)
	for _, f := range []types.Fields{
		{Name: "Waffles", Category: "Breakfast"},
		{Name: "apple pie", Ingredients: "apples", Instructions: "bake"},
	} {
		_, err := gw.Insert(ctx, types.Collection{}, f)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "recipes.jsonl")
	n, err := Export(ctx, gw, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `{"id":2,"name":"apple pie","category":"","ingredients":"apples","instructions":"bake"}` + "\n" +
		`{"id":1,"name":"Waffles","category":"Breakfast","ingredients":"","instructions":""}` + "\n"
	assert.Equal(t, want, string(data))
}

func TestExport_EmptyStoreWritesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	n, err := Export(context.Background(), newGateway(t), path)
	require.NoError(t, err)
	assert.Zero(t, n)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestExport_ReplacesExistingFile(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)
	_, err := gw.Insert(ctx, types.Collection{}, types.Fields{Name: "Soup"})
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("stale\nstale\nstale\n"), 0o644))

	_, err = Export(ctx, gw, path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestExport_MissingDirectory(t *testing.T) {
	_, err := Export(context.Background(), newGateway(t), filepath.Join(t.TempDir(), "missing", "out.jsonl"))
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)

	path := filepath.Join(t.TempDir(), "in.jsonl")
	lines := []string{
		`{"id":40,"name":"Pancakes","category":"Breakfast","ingredients":"flour","instructions":"fry"}`,
		``,
		`not json at all`,
		`42`,
		`{"name":"Toast"}`,
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	n, err := Import(ctx, gw, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got := listAll(t, gw)
	require.Len(t, got, 2)
	assert.Equal(t, types.Recipe{ID: 1, Fields: types.Fields{
		Name: "Pancakes", Category: "Breakfast", Ingredients: "flour", Instructions: "fry",
	}}, got[0], "source ids are ignored")
	assert.Equal(t, "Toast", got[1].Name)
}

func TestImport_SkipsNamelessRecords(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)

	path := filepath.Join(t.TempDir(), "in.jsonl")
	lines := []string{
		`{}`,
		`{"name":"","category":"Dessert"}`,
		`{"name":"   ","ingredients":"salt"}`,
		`{"name":"Flatbread"}`,
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	n, err := Import(ctx, gw, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got := listAll(t, gw)
	require.Len(t, got, 1)
	assert.Equal(t, "Flatbread", got[0].Name)
}

func TestImport_PublishesInserts(t *testing.T) {
	ctx := context.Background()
	gw := newGateway(t)
	var events []types.ChangeEvent
	gw.Subscribe(types.ObserverFunc(func(ev types.ChangeEvent) { events = append(events, ev) }))

	path := filepath.Join(t.TempDir(), "in.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"a"}`+"\n"+`{"name":"b"}`+"\n"), 0o644))

	_, err := Import(ctx, gw, path)
	require.NoError(t, err)
	assert.Equal(t, []types.ChangeEvent{
		{Op: types.OpInsert, Address: types.Record{ID: 1}},
		{Op: types.OpInsert, Address: types.Record{ID: 2}},
	}, events)
}

func TestImport_MissingFile(t *testing.T) {
	_, err := Import(context.Background(), newGateway(t), filepath.Join(t.TempDir(), "nope.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestImport_StopsAtFirstFailure(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	b, err := sqlite.Open(ctx, types.Config{Backend: types.BackendSQLite, DataDir: dir})
	require.NoError(t, err)
	gw := gateway.New(b)

	path := filepath.Join(t.TempDir(), "in.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"a"}`+"\n"+`{"name":"b"}`+"\n"), 0o644))

	require.NoError(t, b.Close())
	n, err := Import(ctx, gw, path)
	assert.ErrorIs(t, err, types.ErrStorageUnavailable)
	assert.Zero(t, n)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newGateway(t)
	for _, name := range []string{"Chili", "bread", "Apple tart"} {
		_, err := src.Insert(ctx, types.Collection{}, types.Fields{Name: name, Ingredients: name + " things"})
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "dump.jsonl")
	_, err := Export(ctx, src, path)
	require.NoError(t, err)

	dst := newGateway(t)
	n, err := Import(ctx, dst, path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	var srcFields, dstFields []types.Fields
	for _, r := range listAll(t, src) {
		srcFields = append(srcFields, r.Fields)
	}
	for _, r := range listAll(t, dst) {
		dstFields = append(dstFields, r.Fields)
	}
	assert.Equal(t, srcFields, dstFields)
}

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pscan/core/facet"
	"pscan/core/index"
	"pscan/core/scan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startWatcher(t *testing.T, src *scan.FileSource, trigger Trigger) *Watcher {
	t.Helper()
	w, err := New(src, 20*time.Millisecond, trigger, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("trigger was not called")
	}
}

func TestWatcher_TriggersOnChange(t *testing.T) {
	root := t.TempDir()
	fired := make(chan struct{}, 16)
	w := startWatcher(t, &scan.FileSource{Root: root}, func(context.Context) error {
		fired <- struct{}{}
		return nil
	})

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0o644))
	waitFor(t, fired)

	// A directory created after Start is watched too.
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	waitFor(t, fired)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.txt"), []byte("b"), 0o644))
	waitFor(t, fired)

	assert.GreaterOrEqual(t, w.Triggered(), int64(3))
}

func TestWatcher_IgnoresExcluded(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".cache"), 0o755))

	fired := make(chan struct{}, 16)
	startWatcher(t, &scan.FileSource{Root: root, Exclude: []string{".cache", ".cache/**", "*.tmp"}}, func(context.Context) error {
		fired <- struct{}{}
		return nil
	})

	require.NoError(t, os.WriteFile(filepath.Join(root, ".cache", "x.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "y.tmp"), []byte("y"), 0o644))

	select {
	case <-fired:
		t.Fatal("excluded change triggered a rescan")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_RescansIndex(t *testing.T) {
	root := t.TempDir()
	src := &scan.FileSource{Root: root}
	sc, _, err := scan.New(`(?P<name>\w+)\.txt$`, src)
	require.NoError(t, err)
	idx := index.New(facet.NewEngine(nil), sc, zap.NewNop())

	fired := make(chan struct{}, 16)
	startWatcher(t, src, func(ctx context.Context) error {
		_, err := idx.Rescan(ctx)
		fired <- struct{}{}
		return err
	})

	require.NoError(t, os.WriteFile(filepath.Join(root, "first.txt"), []byte("1"), 0o644))
	waitFor(t, fired)

	assert.Equal(t, []string{"name"}, idx.Engine().AllParams())
	res := idx.Engine().Resolve(facet.NewKey(map[string]string{"name": "first"}))
	assert.Equal(t, facet.Unique, res.Kind)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := New(&scan.FileSource{Root: t.TempDir()}, time.Millisecond, func(context.Context) error { return nil }, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}

func TestWatcher_MissingRoot(t *testing.T) {
	w, err := New(&scan.FileSource{Root: filepath.Join(t.TempDir(), "missing")}, time.Millisecond, func(context.Context) error { return nil }, nil)
	require.NoError(t, err)

	assert.Error(t, w.Start())
	assert.NoError(t, w.Stop())
}

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"pscan/core/config"
	"pscan/core/scan"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const seedPattern = `a_(?P<a>\d+)/b_(?P<b>\w+)\.txt`

func writeSeedTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{"a_1/b_x.txt", "a_1/b_y.txt", "a_2/b_x.txt", "notes.md"} {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0o644))
	}
	return root
}

// run executes the root command. Every persistent flag is passed explicitly because
// cobra keeps flag values between executions.
func run(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&bytes.Buffer{})
	RootCmd.SetArgs(append(args,
		"--pattern", seedPattern,
		"--root", root,
		"--source", "file",
		"--env-dir", t.TempDir(),
	))
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})
	err := RootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestParamsCommand(t *testing.T) {
	root := writeSeedTree(t)

	out, err := run(t, root, "params", "--output", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"params":["a","b"]}`, out)
}

func TestOptionsCommand(t *testing.T) {
	root := writeSeedTree(t)

	out, err := run(t, root, "options", "a=2", "--output", "json", "--narrow=false")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":["1","2"],"b":["x"]}`, out)

	out, err = run(t, root, "options", "a=2", "--output", "json", "--narrow")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":["2"],"b":["x"]}`, out)

	_, err = run(t, root, "options", "broken", "--output", "json", "--narrow=false")
	assert.ErrorContains(t, err, "expected name=value")
}

func TestResolveCommand(t *testing.T) {
	root := writeSeedTree(t)

	out, err := run(t, root, "resolve", "a=1", "b=y", "--output", "json")
	require.NoError(t, err)

	var res ResolveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "unique", res.Status)
	assert.Equal(t, filepath.ToSlash(filepath.Join(root, "a_1", "b_y.txt")), res.Path)

	out, err = run(t, root, "resolve", "a=1", "--output", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "ambiguous", res.Status)
	assert.Equal(t, 2, res.Count)

	out, err = run(t, root, "resolve", "a=7", "--output", "table")
	require.NoError(t, err)
	assert.Equal(t, "STATUS  not_found\n", out)
}

func TestScanCommand(t *testing.T) {
	root := writeSeedTree(t)

	out, err := run(t, root, "scan", "--output", "json")
	require.NoError(t, err)

	var res ScanOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"a", "b"}, res.Params)
	assert.Len(t, res.Records, 3)
	assert.Empty(t, res.Notices)
}

func TestCommandErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := run(t, filepath.Join(t.TempDir(), "missing"), "params", "--output", "json")
		assert.ErrorIs(t, err, scan.ErrRootNotFound)
	})

	t.Run("bad output", func(t *testing.T) {
		_, err := run(t, writeSeedTree(t), "params", "--output", "xml")
		assert.ErrorContains(t, err, "unsupported output format")
	})
}

func TestBuildSource(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.Scan.Source = scan.SourceFile
	cfg.Scan.Root = "renders"
	src, err := buildSource(t.Context(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, &scan.FileSource{Root: "renders", Exclude: cfg.Scan.Exclude}, src)

	cfg.Scan.Source = scan.SourceBucket
	cfg.Storage.Bucket = "renders"
	cfg.Scan.Prefix = "shapes/"
	src, err = buildSource(t.Context(), cfg, zap.NewNop())
	require.NoError(t, err)
	bucket, ok := src.(*scan.BucketSource)
	require.True(t, ok)
	assert.Equal(t, "renders", bucket.Bucket)
	assert.Equal(t, "shapes/", bucket.Prefix)

	cfg.Scan.Source = scan.SourceCatalog
	cfg.Database.Driver = "sqlite"
	cfg.Database.Name = ":memory:"
	src, err = buildSource(t.Context(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &scan.CatalogSource{}, src)

	cfg.Scan.Source = "ftp"
	_, err = buildSource(t.Context(), cfg, zap.NewNop())
	assert.Error(t, err)
}

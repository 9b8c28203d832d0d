package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisit_PrintsLocalThenServerRecord(t *testing.T) {
	srv := fakeCounter(t, "0xadmin")
	conf, ledgerPath := writeConfig(t, srv.URL)

	out, err := run(t, "-c", conf, "--fid", "7", "visit")
	require.NoError(t, err)

	assert.Contains(t, out, "local fid:7\n  streak:   1")
	assert.Contains(t, out, "server fid:7\n  streak:   4")

	// the server record replaced the local row
	out, err = run(t, "-c", conf, "--fid", "7", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "streak:   4 (last visit 2026-10-14)")
	assert.Contains(t, out, "readings: 3 total, one 1, three 2, custom 0")
	assert.FileExists(t, ledgerPath)
}

func TestReading_AnonymousStaysLocal(t *testing.T) {
	conf, _ := writeConfig(t, "")

	out, err := run(t, "-c", conf, "reading", "three")
	require.NoError(t, err)
	assert.Contains(t, out, "local anonymous")
	assert.Contains(t, out, "readings: 1 total, one 0, three 1, custom 0")
	assert.NotContains(t, out, "server")
}

func TestReading_InvalidType(t *testing.T) {
	conf, _ := writeConfig(t, "")

	_, err := run(t, "-c", conf, "reading", "five")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid reading type")
}

func TestShow_JSONFormat(t *testing.T) {
	conf, _ := writeConfig(t, "")

	_, err := run(t, "-c", conf, "--wallet", "0xAB", "visit")
	require.NoError(t, err)

	out, err := run(t, "-c", conf, "--wallet", "0xAB", "--format", "json", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `"key": "wallet:0xab"`)
	assert.Contains(t, out, `"streak": 1`)
}

func TestExport_WritesLedgerCSV(t *testing.T) {
	conf, _ := writeConfig(t, "")

	_, err := run(t, "-c", conf, "--fid", "7", "reading", "one")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	out, err := run(t, "-c", conf, "export", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], `"fid:7",7,`))
}

func TestExport_Stdout(t *testing.T) {
	conf, _ := writeConfig(t, "")

	out, err := run(t, "-c", conf, "export", "-o", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "key,fid,"))
}

func TestStats_FetchesServerRecord(t *testing.T) {
	srv := fakeCounter(t, "0xadmin")
	conf, _ := writeConfig(t, srv.URL)

	out, err := run(t, "-c", conf, "--fid", "7", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "server fid:7\n  streak:   12")

	_, err = run(t, "-c", conf, "--fid", "8", "stats")
	require.Error(t, err)
}

func TestAdmin_Stats(t *testing.T) {
	srv := fakeCounter(t, "0xadmin")
	conf, _ := writeConfig(t, srv.URL)

	out, err := run(t, "-c", conf, "--wallet", "0xADMIN", "admin", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "FID")
	assert.Contains(t, out, "0xab")
}

func TestAdmin_AccessDenied(t *testing.T) {
	srv := fakeCounter(t, "0xadmin")
	conf, _ := writeConfig(t, srv.URL)

	_, err := run(t, "-c", conf, "--wallet", "0xother", "admin", "stats")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = run(t, "-c", conf, "--fid", "7", "admin", "export", "-o", "-")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestAdmin_Export(t *testing.T) {
	srv := fakeCounter(t, "0xadmin")
	conf, _ := writeConfig(t, srv.URL)

	out, err := run(t, "-c", conf, "--wallet", "0xadmin", "admin", "export", "-o", "-")
	require.NoError(t, err)
	assert.Equal(t, "key,fid\n\"fid:7\",7\n", out)
}

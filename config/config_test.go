package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"txnproc/processor"
)

func TestDefaultConfValidates(t *testing.T) {
	require.NoError(t, DefaultConf.Validate())
}

func TestModeValue(t *testing.T) {
	cases := map[string]processor.Mode{
		"serial": processor.Serial,
		"2pl-x":  processor.TwoPLExclusive,
		"2pl-sx": processor.TwoPLSharedExclusive,
		"occ":    processor.OCC,
		"p-occ":  processor.ParallelOCC,
		"mvcc":   processor.MVCC,
	}
	for name, want := range cases {
		c := DefaultConf
		c.Mode = name
		got, err := c.ModeValue()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestModeValueUnrecognized(t *testing.T) {
	c := DefaultConf
	c.Mode = "quantum"
	_, err := c.ModeValue()
	require.Error(t, err)
}

func TestValidateRejectsOversizedWorkingSet(t *testing.T) {
	c := DefaultConf
	c.DatabaseSize = 5
	c.Workload.ReadSetSize = 3
	c.Workload.WriteSetSize = 3
	require.Error(t, c.Validate())
}

func TestValidateRejectsUnknownDistribution(t *testing.T) {
	c := DefaultConf
	c.Workload.Distribution = "poisson"
	require.Error(t, c.Validate())
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConf, c)
}

func TestLoadOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "txnbench.toml")
	contents := `
mode = "occ"
worker-count = 16

[workload]
read-set-size = 4
write-set-size = 2
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "occ", c.Mode)
	require.Equal(t, 16, c.WorkerCount)
	require.Equal(t, 4, c.Workload.ReadSetSize)
	require.Equal(t, 2, c.Workload.WriteSetSize)
	// Untouched fields keep the defaults.
	require.Equal(t, DefaultConf.DatabaseSize, c.DatabaseSize)
	require.NoError(t, c.Validate())
}

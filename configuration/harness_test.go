package configuration

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHarnessConfiguration_Defaults(t *testing.T) {
	h, err := NewHarnessConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, 1025, h.GetMasterPort())
	assert.Equal(t, 1026, h.GetShardPort(0))
	assert.Equal(t, 1028, h.GetShardPort(2))
	assert.Equal(t, int64(1000), h.GetClientValue())
	assert.True(t, h.WaitReady())
}

func TestNewHarnessConfiguration_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harness.json")
	data := `{
		"binaries": {"dirs": ["/opt/kv/bin"], "runDir": "/tmp/run"},
		"ports": {"master": 2025, "shardBase": 2026},
		"timing": {"pollInterval": "50ms", "maxPollInterval": "10ms", "settle": "2s", "waitReady": false},
		"clientValue": 7
	}`
	require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))

	h, err := NewHarnessConfiguration(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/kv/bin"}, h.GetBinDirs())
	assert.Equal(t, "/tmp/run", h.GetRunDir())
	assert.Equal(t, 2025, h.GetMasterPort())
	assert.Equal(t, 2027, h.GetShardPort(1))
	assert.Equal(t, 50*time.Millisecond, h.GetPollInterval())
	// the cap is raised to the poll interval
	assert.Equal(t, 50*time.Millisecond, h.GetMaxPollInterval())
	assert.Equal(t, 2*time.Second, h.GetSettle())
	assert.False(t, h.WaitReady())
	assert.Equal(t, int64(7), h.GetClientValue())
}

func TestNewHarnessConfiguration_Errors(t *testing.T) {
	for name, data := range map[string]string{
		"malformed":      `{"ports": `,
		"unknown":        `{"servers": {}}`,
		"bad port":       `{"ports": {"master": 70000}}`,
		"bad duration":   `{"timing": {"settle": "soon"}}`,
		"unknown timing": `{"timing": {"nap": "1s"}}`,
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "harness.json")
			require.NoError(t, ioutil.WriteFile(path, []byte(data), 0644))
			_, err := NewHarnessConfiguration(path)
			require.Error(t, err)
		})
	}
}

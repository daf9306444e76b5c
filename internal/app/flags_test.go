package app

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)
	require.NoError(t, fs.Parse([]string{"-sim", "elementary", "-steps", "10", "-tps", "0", "-json", "-set", "rule=30"}))

	assert.Equal(t, "elementary", cfg.Sim)
	assert.Equal(t, 10, cfg.Steps)
	assert.Zero(t, cfg.TPS)
	assert.True(t, cfg.JSON)
	assert.EqualValues(t, 42, cfg.Seed)
}

func TestSettings(t *testing.T) {
	cfg := &Config{Set: " w=64, rule = 30 ,,memoize=flat"}
	got, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"w": "64", "rule": "30", "memoize": "flat"}, got)

	cfg.Set = "w"
	_, err = cfg.Settings()
	assert.ErrorContains(t, err, `setting "w" is not key=value`)

	cfg.Set = ""
	got, err = cfg.Settings()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLogger(t *testing.T) {
	for _, json := range []bool{false, true} {
		l, err := (&Config{JSON: json}).Logger()
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/outbound-metrics/internal/config"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"process", "metrics", "serve", "snapshots"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "outbound-metrics", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestProcessCommand_Flags(t *testing.T) {
	for _, name := range []string{"accounts", "outbound", "format", "output-dir", "dry-run"} {
		require.NotNil(t, processCmd.Flags().Lookup(name), "process command should have --%s flag", name)
	}
}

func TestMetricsCommand_Flags(t *testing.T) {
	flag := metricsCmd.Flags().Lookup("report")
	require.NotNil(t, flag)
	assert.Equal(t, "all", flag.DefValue)

	require.NotNil(t, metricsCmd.Flags().Lookup("region"))
	require.NotNil(t, metricsCmd.Flags().Lookup("emp-bucket"))
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestNewEngine_DefaultTables(t *testing.T) {
	cfg = &config.Config{
		Metrics: config.MetricsConfig{LiftAbsThreshold: 2000, LiftPctThreshold: 5},
	}

	engine, err := newEngine()
	require.NoError(t, err)
	assert.Len(t, engine.EmployeeBucketLabels(), 12)
}

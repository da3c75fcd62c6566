package meta

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.True(t, config.Anchored)
	assert.False(t, config.FullMatch)
	assert.True(t, config.EnableLiteral)
	assert.Equal(t, StrategyAuto, config.Strategy)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"unknown strategy", func(c *Config) { c.Strategy = Strategy(42) }, "Strategy"},
		{"negative strategy", func(c *Config) { c.Strategy = Strategy(-1) }, "Strategy"},
		{"negative step limit", func(c *Config) { c.StepLimit = -1 }, "StepLimit"},
		{"negative backtrack bits", func(c *Config) { c.MaxBacktrackBits = -1 }, "MaxBacktrackBits"},
		{"zero recursion depth", func(c *Config) { c.MaxRecursionDepth = 0 }, "MaxRecursionDepth"},
		{"huge recursion depth", func(c *Config) { c.MaxRecursionDepth = 2_000_000 }, "MaxRecursionDepth"},
		{"zero nesting depth", func(c *Config) { c.MaxNestingDepth = 0 }, "MaxNestingDepth"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			err := config.Validate()

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr), "got %v", err)
			assert.Equal(t, tt.field, cerr.Field)
			assert.Contains(t, err.Error(), "rxvm: invalid config: "+tt.field)
		})
	}
}

func TestCompileRejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.StepLimit = -5
	engine, err := CompileWithConfig("abc", config)
	assert.Nil(t, engine)

	var cerr *ConfigError
	assert.True(t, errors.As(err, &cerr))
}

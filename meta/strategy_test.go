package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		name string
		want Strategy
	}{
		{"auto", StrategyAuto},
		{"", StrategyAuto},
		{"backtrack", StrategyBacktrack},
		{"depth", StrategyBacktrack},
		{"DEPTH", StrategyBacktrack},
		{"pikevm", StrategyPikeVM},
		{"parallel", StrategyPikeVM},
		{" Parallel ", StrategyPikeVM},
		{"literal", StrategyLiteral},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := ParseStrategy("dfa")
	var cerr *ConfigError
	assert.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), `unknown strategy "dfa"`)
}

func TestStrategyString(t *testing.T) {
	for _, s := range []Strategy{StrategyAuto, StrategyBacktrack, StrategyPikeVM, StrategyLiteral} {
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, "Strategy(9)", Strategy(9).String())
}

func TestStrategySelection(t *testing.T) {
	unanchored := DefaultConfig()
	unanchored.Anchored = false

	noLiteral := unanchored
	noLiteral.EnableLiteral = false

	full := unanchored
	full.FullMatch = true

	backtrack := unanchored
	backtrack.Strategy = StrategyBacktrack

	forcedLiteral := DefaultConfig()
	forcedLiteral.Strategy = StrategyLiteral

	tests := []struct {
		name    string
		pattern string
		config  Config
		want    Strategy
	}{
		{"anchored default", "foo|bar", DefaultConfig(), StrategyPikeVM},
		{"unanchored literal", "foo|bar", unanchored, StrategyLiteral},
		{"unanchored repetition", "fo+|bar", unanchored, StrategyPikeVM},
		{"literal disabled", "foo|bar", noLiteral, StrategyPikeVM},
		{"full match", "foo|bar", full, StrategyPikeVM},
		{"empty pattern", "", unanchored, StrategyPikeVM},
		{"explicit backtrack", "foo|bar", backtrack, StrategyBacktrack},
		{"literal without automaton", "foo|bar", forcedLiteral, StrategyPikeVM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := CompileWithConfig(tt.pattern, tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.want, engine.Strategy())
			assert.Equal(t, tt.want == StrategyLiteral, engine.Literals() != nil)
		})
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/logflow/internal/cleaning"
)

const itemsJSON = `[
  {"id": "a", "kind": "manual", "category": "Eletrônicos", "quantity": 2, "weight": 1.5, "volume": 0.1},
  {"id": "b", "kind": "manual", "category": "Móveis", "quantity": 1, "weight": 3, "volume": 0.2, "unit": "CX"},
  {"id": "c", "kind": "manual", "category": "Móveis", "quantity": -1, "weight": 2, "volume": 0.5}
]`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(viper.New())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTotals_Stdin(t *testing.T) {
	out, err := run(t, itemsJSON, "totals")
	require.NoError(t, err)

	var got totalsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 3, got.TotalItems)
	assert.InDelta(t, 6.0, got.TotalWeight, 1e-9)
	assert.InDelta(t, 0.4, got.TotalVolume, 1e-9)
	assert.Nil(t, got.AverageConfidence)

	require.Len(t, got.ByCategory, 2)
	assert.Equal(t, "Eletrônicos", got.ByCategory[0].Key)
	assert.InDelta(t, 33.3, got.ByCategory[0].Percentage, 1e-9)
	assert.Equal(t, 2, got.ByCategory[1].Count)
	assert.InDelta(t, 66.7, got.ByCategory[1].Percentage, 1e-9)

	require.Len(t, got.Diagnostics, 1)
	assert.Equal(t, 2, got.Diagnostics[0].Index)
	assert.Equal(t, "quantity", got.Diagnostics[0].Field)
	assert.Equal(t, "negative", got.Diagnostics[0].Reason)
}

func TestTotals_FileWithGroupBy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte(itemsJSON), 0o644))

	out, err := run(t, "", "totals", path, "--group-by", "unit")
	require.NoError(t, err)

	var got totalsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "unspecified", got.Groups[0].Key)
	assert.Equal(t, 2, got.Groups[0].Count)
	assert.Equal(t, "CX", got.Groups[1].Key)
}

func TestTotals_Errors(t *testing.T) {
	_, err := run(t, itemsJSON, "totals", "--group-by", "colour")
	assert.ErrorContains(t, err, "unknown group-by field")

	_, err = run(t, "{not json", "totals")
	assert.ErrorContains(t, err, "failed to decode items")

	_, err = run(t, "", "totals", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open items file")
}

func TestRulesValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`rules:
  - name: trim
    type: trim_whitespace
    priority: 2
  - name: codes
    type: standardize_case
    fields: [product_code]
    priority: 1
`), 0o644))

	out, err := run(t, "", "rules", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "2 rules OK")
	assert.Less(t, strings.Index(out, "codes"), strings.Index(out, "trim"))

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[[rules]]\nname = \"x\"\ntype = \"explode\"\n"), 0o644))
	_, err = run(t, "", "rules", "validate", bad)
	assert.ErrorIs(t, err, cleaning.ErrInvalidRule)
}

func TestRulesDefaults(t *testing.T) {
	for _, format := range []string{"toml", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out, err := run(t, "", "rules", "defaults", "--format", format)
			require.NoError(t, err)

			rs, err := cleaning.Parse([]byte(out), cleaning.Format(format))
			require.NoError(t, err)
			assert.Len(t, rs, len(cleaning.DefaultRules()))
		})
	}
}

func TestExplicitConfigMustExist(t *testing.T) {
	_, err := run(t, "[]", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "totals")
	assert.ErrorContains(t, err, "failed to read config")
}

func TestTotals_OverflowStillEncodes(t *testing.T) {
	out, err := run(t, `[{"id": "x", "kind": "manual", "quantity": 10, "weight": 1e308, "volume": 1}]`, "totals")
	require.NoError(t, err)

	var got totalsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Zero(t, got.TotalWeight)
	require.Len(t, got.Diagnostics, 1)
	assert.Equal(t, "overflow", got.Diagnostics[0].Reason)
}

func TestLogLevelAppliesToEverySubcommand(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	_, err := run(t, itemsJSON, "--log-level", "error", "totals")
	require.NoError(t, err)
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelWarn))

	t.Setenv("LOGFLOW_LOG_LEVEL", "debug")
	_, err = run(t, "", "rules", "defaults")
	require.NoError(t, err)
	assert.True(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}

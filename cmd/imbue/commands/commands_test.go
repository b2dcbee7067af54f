package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"imbuesvc/internal/exporter"
	"imbuesvc/internal/imbue"
	api "imbuesvc/pkg/contracts/api/v1"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type filledOutput struct {
	Dataset []struct {
		X       float64 `json:"x"`
		Y       float64 `json:"y"`
		Imputed bool    `json:"imputed"`
	} `json:"dataset"`
}

func TestStrategiesCommand(t *testing.T) {
	t.Run("table", func(t *testing.T) {
		out, _, err := execute(t, "strategies")
		require.NoError(t, err)

		assert.Contains(t, out, "NAME")
		for _, s := range imbue.Strategies() {
			assert.Contains(t, out, s.String())
		}
		assert.Contains(t, out, "*")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "strategies", "--format", "json")
		require.NoError(t, err)

		var resp api.StrategiesResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Len(t, resp.Strategies, 3)
		assert.Equal(t, "average", resp.Default)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := execute(t, "strategies", "--format", "yaml")
		assert.ErrorContains(t, err, "unsupported format")
	})
}

func TestFillCommand(t *testing.T) {
	input := writeDataset(t, "prices.csv", "x,y\n1,123\n5,43\n")

	t.Run("json to stdout", func(t *testing.T) {
		out, logs, err := execute(t, "fill", "--input", input, "--strategy", "zeroed")
		require.NoError(t, err)

		var got filledOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got.Dataset, 3)
		for i, p := range got.Dataset {
			assert.Equal(t, float64(i+2), p.X)
			assert.Zero(t, p.Y)
			assert.True(t, p.Imputed)
		}
		assert.Contains(t, logs, "dataset filled")
	})

	t.Run("csv to stdout", func(t *testing.T) {
		out, _, err := execute(t, "fill", "-i", input, "-s", "average", "-f", "csv")
		require.NoError(t, err)

		assert.Contains(t, out, "x,y,imputed")
		assert.Contains(t, out, "2,103,true")
		assert.Contains(t, out, "4,63,true")
	})

	t.Run("merged xlsx file", func(t *testing.T) {
		output := filepath.Join(t.TempDir(), "filled.xlsx")
		out, _, err := execute(t, "fill", "--input", input, "--strategy", "last_known", "--merge", "--output", output)
		require.NoError(t, err)
		assert.Empty(t, out)

		points, err := exporter.ReadFile(output)
		require.NoError(t, err)
		assert.Equal(t, []imbue.DataPoint{
			{X: 1, Y: 123}, {X: 2, Y: 123}, {X: 3, Y: 123}, {X: 4, Y: 123}, {X: 5, Y: 43},
		}, points)
	})

	t.Run("default strategy", func(t *testing.T) {
		out, _, err := execute(t, "fill", "--input", input)
		require.NoError(t, err)
		assert.Contains(t, out, "103")
	})

	t.Run("unknown strategy", func(t *testing.T) {
		_, _, err := execute(t, "fill", "--input", input, "--strategy", "median")
		assert.ErrorIs(t, err, imbue.ErrUnknownStrategy)
	})

	t.Run("missing input flag", func(t *testing.T) {
		_, _, err := execute(t, "fill")
		assert.ErrorContains(t, err, "input")
	})

	t.Run("duplicate positions", func(t *testing.T) {
		dup := writeDataset(t, "dup.json", `[{"x":1.2,"y":1},{"x":1.9,"y":2}]`)
		_, _, err := execute(t, "fill", "--input", dup)
		assert.ErrorIs(t, err, imbue.ErrDuplicatePosition)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "fill", "--input", filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})
}

func TestServeCommandRejectsBadPort(t *testing.T) {
	_, _, err := execute(t, "serve", "--port", "70000")
	assert.ErrorContains(t, err, "invalid port")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "imbue v")
}

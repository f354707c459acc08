package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	t.Run("renders comment and default per entry", func(t *testing.T) {
		schema := NewSet()
		schema.String("foo.bar", "", "5", "Bar count")
		schema.Switch("foo.enabled", "", "")

		path := filepath.Join(t.TempDir(), "config.ini")
		require.NoError(t, WriteDefault(path, schema))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "# Bar count\nfoo.bar = 5\n\nfoo.enabled = false\n\n", string(data))
	})

	t.Run("no default renders empty assignment", func(t *testing.T) {
		schema := NewSet()
		schema.StringNoDefault("foo.token", "Access token")

		path := filepath.Join(t.TempDir(), "config.ini")
		require.NoError(t, WriteDefault(path, schema))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.Equal(t, "# Access token\nfoo.token = \n\n", string(data))
	})

	t.Run("byte-identical across repeated generations", func(t *testing.T) {
		schema := NewSet()
		schema.String("a", "", "1", "first")
		schema.Switch("b", "", "second")
		schema.StringNoDefault("c", "")

		first := filepath.Join(t.TempDir(), "config.ini")
		second := filepath.Join(t.TempDir(), "config.ini")
		require.NoError(t, WriteDefault(first, schema))
		require.NoError(t, WriteDefault(second, schema))

		d1, err := os.ReadFile(first)
		require.NoError(t, err)
		d2, err := os.ReadFile(second)
		require.NoError(t, err)
		require.Equal(t, d1, d2)
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		schema := NewSet()
		schema.String("a", "", "1", "")

		path := filepath.Join(t.TempDir(), "nested", "deeper", "config.ini")
		require.NoError(t, WriteDefault(path, schema))
		_, err := os.Stat(path)
		require.NoError(t, err)
	})
}

func TestParseFile(t *testing.T) {
	schema := NewSet()
	schema.String("foo.bar", "", "5", "Bar count")
	schema.Switch("foo.enabled", "", "")
	schema.Repeatable("plugin", "")

	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "config.ini")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("round-trips generated defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.ini")
		require.NoError(t, WriteDefault(path, schema))

		vals, err := ParseArgs(schema, nil)
		require.NoError(t, err)
		require.NoError(t, ParseFile(path, schema, vals))

		require.Equal(t, "5", vals.String("foo.bar"))
		require.False(t, vals.Bool("foo.enabled"))
	})

	t.Run("assignments override defaults", func(t *testing.T) {
		path := writeConfig(t, "# Bar count\nfoo.bar = 9\n\nfoo.enabled = true\n")
		vals, err := ParseArgs(schema, nil)
		require.NoError(t, err)
		require.NoError(t, ParseFile(path, schema, vals))

		require.Equal(t, "9", vals.String("foo.bar"))
		require.True(t, vals.Bool("foo.enabled"))
	})

	t.Run("CLI value wins over file value", func(t *testing.T) {
		path := writeConfig(t, "foo.bar = 9\n")
		vals, err := ParseArgs(schema, []string{"--foo.bar", "7"})
		require.NoError(t, err)
		require.NoError(t, ParseFile(path, schema, vals))
		require.Equal(t, "7", vals.String("foo.bar"))
	})

	t.Run("plugin selector accumulates from both sources", func(t *testing.T) {
		path := writeConfig(t, "plugin = net\nplugin = chain\n")
		vals, err := ParseArgs(schema, []string{"--plugin", "store"})
		require.NoError(t, err)
		require.NoError(t, ParseFile(path, schema, vals))
		require.Equal(t, []string{"store", "net", "chain"}, vals.Strings("plugin"))
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		path := writeConfig(t, "not.in.schema = whatever\nfoo.bar = 3\n")
		vals, err := ParseArgs(schema, nil)
		require.NoError(t, err)
		require.NoError(t, ParseFile(path, schema, vals))
		require.Equal(t, "3", vals.String("foo.bar"))
	})

	t.Run("empty assignment leaves option unset", func(t *testing.T) {
		path := writeConfig(t, "foo.bar = \n")
		vals, err := ParseArgs(schema, nil)
		require.NoError(t, err)
		require.NoError(t, ParseFile(path, schema, vals))
		require.Equal(t, "5", vals.String("foo.bar"))
	})

	t.Run("environment variables expand in values", func(t *testing.T) {
		t.Setenv("APPHOST_TEST_BAR", "42")
		path := writeConfig(t, "foo.bar = ${APPHOST_TEST_BAR}\n")
		vals, err := ParseArgs(schema, nil)
		require.NoError(t, err)
		require.NoError(t, ParseFile(path, schema, vals))
		require.Equal(t, "42", vals.String("foo.bar"))
	})

	t.Run("malformed line is a parse error", func(t *testing.T) {
		path := writeConfig(t, "this is not an assignment\n")
		vals, err := ParseArgs(schema, nil)
		require.NoError(t, err)
		err = ParseFile(path, schema, vals)
		require.Error(t, err)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
		require.Equal(t, path, perr.Source)
	})

	t.Run("missing file is an error for the parser", func(t *testing.T) {
		vals, err := ParseArgs(schema, nil)
		require.NoError(t, err)
		require.Error(t, ParseFile(filepath.Join(t.TempDir(), "absent.ini"), schema, vals))
	})
}

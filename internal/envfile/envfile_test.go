package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/exp/golden"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/litellm-tools/litellmctl/internal/preflight"
)

func TestFormatValue(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"0.0.0.0", "0.0.0.0"},
		{"sk-abc123", "sk-abc123"},
		{"localhost,127.0.0.1", "localhost,127.0.0.1"},
		{"has space", `"has space"`},
		{`pass"word`, `"pass\"word"`},
		{`back\slash`, `"back\\slash"`},
		{"pre#fix", `"pre#fix"`},
		{"it's", `"it's"`},
		{"pa$$word", `"pa\$\$word"`},
	} {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, Write(path, []Pair{
		{"LITELLM_HOST", "0.0.0.0"},
		{"LITELLM_PORT", "4000"},
		{"SSL_CERT_FILE", ""},
		{"LITELLM_MASTER_KEY", "sk-fAke123_-x"},
		{"NO_PROXY", "localhost,127.0.0.1,0.0.0.0"},
		{"AZURE_CLIENT_SECRET", `p@ss "word" \ #1$`},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	golden.RequireEqual(t, data)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRoundTrip(t *testing.T) {
	want := map[string]string{
		"PLAIN":     "value",
		"EMPTY":     "",
		"SPACES":    "first second  third",
		"QUOTES":    `say "hello" to 'them'`,
		"BACKSLASH": `C:\proxy\certs`,
		"HASH":      "secret#not-a-comment",
		"DOLLAR":    "pa$$word$HOME",
	}
	var pairs []Pair
	for _, key := range []string{"PLAIN", "EMPTY", "SPACES", "QUOTES", "BACKSLASH", "HASH", "DOLLAR"} {
		pairs = append(pairs, Pair{key, want[key]})
	}

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, Write(path, pairs))

	got, err := godotenv.Read(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	_, err := Load(path)
	var missing *preflight.MissingFileError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, path, missing.Path)
}

func TestLoadExports(t *testing.T) {
	t.Setenv("LITELLM_CTL_TEST_KEY", "")
	t.Setenv("NO_PROXY", "")
	t.Setenv("no_proxy", "")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, Write(path, []Pair{
		{"LITELLM_CTL_TEST_KEY", "exported"},
		{"NO_PROXY", "localhost,127.0.0.1,0.0.0.0"},
	}))

	vars, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "exported", vars["LITELLM_CTL_TEST_KEY"])
	require.Equal(t, "exported", os.Getenv("LITELLM_CTL_TEST_KEY"))

	// the lowercase form is mirrored for the exec'd child
	require.Equal(t, "localhost,127.0.0.1,0.0.0.0", vars["no_proxy"])
	require.Equal(t, "localhost,127.0.0.1,0.0.0.0", os.Getenv("no_proxy"))
}

// Package envfile reads and writes the dotenv file the proxy runs with.
// Values are quoted so that anything the generator writes survives a
// reload byte for byte, including secrets with spaces, quotes, hashes,
// backslashes, and dollar signs.
package envfile

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/joho/godotenv"

	"github.com/litellm-tools/litellmctl/internal/preflight"
)

// Pair is one KEY=value entry. Write preserves pair order, so generated
// files stay diffable across runs.
type Pair struct {
	Key   string
	Value string
}

var needsQuoting = regexp.MustCompile(`[\s#'"\\$]`)

// FormatValue renders a value for a dotenv line. Empty values become "",
// values with shell-significant characters are escaped and double-quoted,
// everything else stays bare.
func FormatValue(v string) string {
	if v == "" {
		return `""`
	}
	if !needsQuoting.MatchString(v) {
		return v
	}
	escaped := strings.ReplaceAll(v, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, `$`, `\$`)
	return `"` + escaped + `"`
}

// Write renders pairs in order, one KEY=value per line, and writes the
// file readable by its owner only.
func Write(path string, pairs []Pair) error {
	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(FormatValue(p.Value))
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	return nil
}

// Load parses the dotenv file at path and exports every entry into the
// process environment, so the proxy inherits it across exec. The parsed
// map is returned for explicit lookups; validation works off the map, not
// off os.Getenv.
//
// When the file sets NO_PROXY, the lowercase no_proxy form is mirrored
// unless the file sets it itself. Python HTTP stacks read the lowercase
// name.
func Load(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &preflight.MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("stat env file: %w", err)
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parse env file: %w", err)
	}
	if v, ok := vars["NO_PROXY"]; ok && v != "" {
		if _, set := vars["no_proxy"]; !set {
			vars["no_proxy"] = v
		}
	}
	for k, v := range vars {
		if err := os.Setenv(k, v); err != nil {
			return nil, fmt.Errorf("export %s: %w", k, err)
		}
	}
	return vars, nil
}

// Package preflight validates the generated environment and config
// document pair before the proxy is allowed to start. Checks fail fast:
// the first problem is reported with the exact file, variable, or line
// that caused it, and nothing is ever repaired in place.
package preflight

import (
	"fmt"
	"os"
	"strings"

	"github.com/litellm-tools/litellmctl/internal/litellm"
	"github.com/litellm-tools/litellmctl/internal/placeholder"
)

// CheckInput carries everything the checker reads. Env is the loaded env
// file; the checker never falls back to the ambient process environment.
type CheckInput struct {
	ConfigPath string
	Env        map[string]string

	// SkipPlaceholderScan disables the document template scan only.
	// Provider variable checks always run.
	SkipPlaceholderScan bool
}

// Report is the outcome of a passed check.
type Report struct {
	Document  *litellm.Document
	Providers []litellm.Provider
	Warnings  []string
}

// LoadDocument reads and parses the config document at path.
func LoadDocument(path string) (*litellm.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("read config document: %w", err)
	}
	return litellm.Parse(data)
}

// Check runs the full preflight sequence against the config document and
// the loaded environment. It returns the first fatal problem found, or a
// report with the enabled providers and any non-fatal warnings.
func Check(in CheckInput) (*Report, error) {
	data, err := os.ReadFile(in.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingFileError{Path: in.ConfigPath}
		}
		return nil, fmt.Errorf("read config document: %w", err)
	}
	doc, err := litellm.Parse(data)
	if err != nil {
		return nil, err
	}

	report := &Report{Document: doc, Providers: doc.Providers()}

	if !in.SkipPlaceholderScan {
		if lines := scanTemplates(data); len(lines) > 0 {
			return nil, &PlaceholderValueError{Lines: lines}
		}
	}

	for _, prov := range report.Providers {
		for _, name := range prov.RequiredVars() {
			value := in.Env[name]
			if strings.TrimSpace(value) == "" {
				return nil, &MissingVariableError{Var: name, Provider: prov.String()}
			}
			if placeholder.IsPlaceholder(value) {
				return nil, &PlaceholderValueError{Var: name, Value: value}
			}
		}
	}

	if hasProvider(report.Providers, litellm.ProviderVertex) {
		if err := checkVertexCredentials(in.Env, report); err != nil {
			return nil, err
		}
	}

	checkCABundle(in.Env, report)

	return report, nil
}

// checkVertexCredentials path-checks the optional service account file.
// Unset is a warning, not an error: application-default login also works.
func checkVertexCredentials(env map[string]string, report *Report) error {
	creds := env["GOOGLE_APPLICATION_CREDENTIALS"]
	switch {
	case strings.TrimSpace(creds) == "":
		report.Warnings = append(report.Warnings,
			"GOOGLE_APPLICATION_CREDENTIALS is not set; run `gcloud auth application-default login` before starting")
	case placeholder.IsPlaceholder(creds):
		return &PlaceholderValueError{Var: "GOOGLE_APPLICATION_CREDENTIALS", Value: creds}
	default:
		if _, err := os.Stat(creds); err != nil {
			return &MissingFileError{Path: creds}
		}
	}
	return nil
}

// checkCABundle warns when the env file points at a real CA bundle but a
// route still pins ssl_verify to a template path.
func checkCABundle(env map[string]string, report *Report) {
	ca := env["SSL_CERT_FILE"]
	if ca == "" || placeholder.IsPlaceholder(ca) {
		return
	}
	for _, entry := range report.Document.ModelList {
		if v := string(entry.Params.SSLVerify); v != "" && placeholder.IsPlaceholder(v) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("SSL_CERT_FILE is set but %s still pins ssl_verify to %q", entry.ModelName, v))
			return
		}
	}
}

func scanTemplates(data []byte) []string {
	var hits []string
	for i, line := range strings.Split(string(data), "\n") {
		if placeholder.ContainsTemplate(line) {
			hits = append(hits, fmt.Sprintf("line %d: %s", i+1, strings.TrimSpace(line)))
		}
	}
	return hits
}

func hasProvider(provs []litellm.Provider, want litellm.Provider) bool {
	for _, p := range provs {
		if p == want {
			return true
		}
	}
	return false
}

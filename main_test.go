package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/litellm-tools/litellmctl/internal/preflight"
)

func TestExplainError(t *testing.T) {
	for name, tt := range map[string]struct {
		err     error
		reason  string
		details string
		hint    string
	}{
		"missing file": {
			err:     &preflight.MissingFileError{Path: ".env"},
			reason:  "A required file is missing.",
			details: ".env",
			hint:    "Run `litellmctl wizard` to generate the proxy files.",
		},
		"missing variable": {
			err:     &preflight.MissingVariableError{Provider: "Azure OpenAI", Var: "AZURE_TENANT_ID"},
			reason:  "Azure OpenAI is enabled but not fully configured.",
			details: "Azure OpenAI requires AZURE_TENANT_ID to be set",
			hint:    "Set AZURE_TENANT_ID in the env file, or re-run `litellmctl wizard`.",
		},
		"placeholder variable": {
			err:     &preflight.PlaceholderValueError{Var: "VERTEX_PROJECT", Value: "your-project"},
			reason:  "A template placeholder survived into the environment.",
			details: `VERTEX_PROJECT still holds the placeholder "your-project"`,
			hint:    "Replace the value of VERTEX_PROJECT with a real one.",
		},
		"placeholder lines": {
			err:     &preflight.PlaceholderValueError{Lines: []string{"line 4: api_base: https://your-resource"}},
			reason:  "The config document still holds template placeholders.",
			details: "line 4: api_base: https://your-resource",
			hint:    "Fill in the real values, or pass --skip-validate to start anyway.",
		},
		"port in use": {
			err:     &preflight.PortInUseError{Port: 4000, PID: 123},
			reason:  "The proxy port is taken.",
			details: "port 4000 is already in use by pid 123",
			hint:    "Stop the other process or pick a different LITELLM_PORT.",
		},
		"cli error": {
			err:     cliError{errors.New("boom"), "Could not write the env file."},
			reason:  "Could not write the env file.",
			details: "boom",
		},
		"plain error": {
			err:     errors.New("boom"),
			reason:  "Something went wrong.",
			details: "boom",
		},
	} {
		t.Run(name, func(t *testing.T) {
			reason, details, hint := explainError(tt.err)
			require.Equal(t, tt.reason, reason)
			require.Equal(t, tt.details, details)
			require.Equal(t, tt.hint, hint)
		})
	}
}

func TestExplainErrorWrapped(t *testing.T) {
	err := cliError{&preflight.MissingFileError{Path: "config.yaml"}, "Could not load the config."}
	reason, details, _ := explainError(err)
	require.Equal(t, "A required file is missing.", reason)
	require.Equal(t, "config.yaml", details)
}

func TestBuildVersion(t *testing.T) {
	require.Equal(t, "litellmctl version dev", buildVersion())
}

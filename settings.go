package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/charmbracelet/x/exp/ordered"
)

const (
	defaultHost       = "0.0.0.0"
	defaultPort       = "4000"
	defaultEnvName    = ".env"
	defaultConfigName = "config.yaml"

	// the upstream quickstart key; fine on a laptop, not on a deployment.
	insecureMasterKey = "sk-1234"
)

// Settings resolve in flag > environment > default order. The LITELLM_*
// values can be overridden once more by the env file after it is loaded.
type Settings struct {
	EnvFile      string `env:"ENV_FILE"`
	ConfigFile   string `env:"CONFIG_FILE"`
	ProjectDir   string
	Host         string `env:"LITELLM_HOST"`
	Port         string `env:"LITELLM_PORT"`
	MasterKey    string `env:"LITELLM_MASTER_KEY"`
	SkipValidate bool   `env:"LITELLM_SKIP_VALIDATE"`
	LiteLLMBin   string `env:"LITELLM_BIN"`
	PythonBin    string `env:"PYTHON_BIN" envDefault:"python3"`
}

func resolveSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return s, cliError{err, "Could not parse the environment."}
	}
	s.ProjectDir = ordered.First(flagProjectDir, ".")
	s.EnvFile = ordered.First(flagEnvFile, s.EnvFile, filepath.Join(s.ProjectDir, defaultEnvName))
	s.ConfigFile = ordered.First(flagConfigFile, s.ConfigFile, filepath.Join(s.ProjectDir, defaultConfigName))
	s.Host = ordered.First(s.Host, defaultHost)
	s.Port = ordered.First(s.Port, defaultPort)
	return s, nil
}

// withEnvFile folds the loaded env file over the ambient settings. Once
// the file exists it is the project's source of truth.
func (s Settings) withEnvFile(vars map[string]string) Settings {
	s.Host = ordered.First(vars["LITELLM_HOST"], s.Host)
	s.Port = ordered.First(vars["LITELLM_PORT"], s.Port)
	s.MasterKey = ordered.First(vars["LITELLM_MASTER_KEY"], s.MasterKey)
	return s
}

// maskKey hides the middle of a secret. Short keys are masked whole so
// their length stays unknown.
func maskKey(key string) string {
	const edge = 4
	if len(key) < 2*edge+1 {
		return "****"
	}
	return key[:edge] + "…" + key[len(key)-edge:]
}

func environSnapshot() map[string]string {
	environ := os.Environ()
	vars := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}

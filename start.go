package main

import (
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"strings"

	shellwords "github.com/caarlos0/go-shellwords"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/litellm-tools/litellmctl/internal/envfile"
	"github.com/litellm-tools/litellmctl/internal/preflight"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Validate the configuration and run the proxy in the foreground",
	Args:  cobra.NoArgs,
	RunE:  runStart,
}

func init() {
	startCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, help["dry-run"])
	startCmd.Flags().BoolVar(&flagSkipValidate, "skip-validate", false, help["skip-validate"])
}

func runStart(*cobra.Command, []string) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}
	s.SkipValidate = s.SkipValidate || flagSkipValidate
	return startProxy(s, flagDryRun)
}

// execProxyFn is swapped in tests.
var execProxyFn = execProxy

func startProxy(s Settings, dryRun bool) error {
	vars, err := envfile.Load(s.EnvFile)
	if err != nil {
		return err
	}
	s = s.withEnvFile(vars)
	log.Info("Loaded environment", "file", s.EnvFile, "vars", len(vars))

	report, err := preflight.Check(preflight.CheckInput{
		ConfigPath:          s.ConfigFile,
		Env:                 vars,
		SkipPlaceholderScan: s.SkipValidate,
	})
	if err != nil {
		return err
	}
	for _, provider := range report.Providers {
		log.Info("Provider enabled", "provider", provider.String())
	}
	for _, warning := range report.Warnings {
		log.Warn(warning)
	}

	switch s.MasterKey {
	case "":
		log.Warn("No master key set, the proxy will accept unauthenticated requests")
	case insecureMasterKey:
		log.Warn("Master key is the well-known default, change it before exposing the proxy", "key", maskKey(s.MasterKey))
	default:
		log.Info("Master key configured", "key", maskKey(s.MasterKey))
	}

	port, err := strconv.Atoi(s.Port)
	if err != nil || port < 1 || port > 65535 {
		return newUserErrorf("invalid port %q", s.Port)
	}

	if dryRun {
		log.Info("Dry run, configuration is valid, not starting the proxy")
		return nil
	}

	if pid, used := portInUse(s.Host, port); used {
		return &preflight.PortInUseError{Port: port, PID: pid}
	}

	argv, err := proxyArgv(s)
	if err != nil {
		return err
	}
	log.Info("Starting LiteLLM proxy", "host", s.Host, "port", s.Port, "config", s.ConfigFile)
	return execProxyFn(argv)
}

// proxyCommand picks the interpreter for the proxy. LITELLM_BIN wins and
// may carry arguments, then a litellm binary on PATH, then python -m
// litellm.
func proxyCommand(s Settings) ([]string, error) {
	if s.LiteLLMBin != "" {
		words, err := shellwords.Parse(s.LiteLLMBin)
		if err != nil {
			return nil, cliError{err, "Could not parse LITELLM_BIN."}
		}
		if len(words) == 0 {
			return nil, newUserErrorf("LITELLM_BIN is set but empty")
		}
		return words, nil
	}
	if path, err := exec.LookPath("litellm"); err == nil {
		return []string{path}, nil
	}
	return []string{s.PythonBin, "-m", "litellm"}, nil
}

func proxyArgv(s Settings) ([]string, error) {
	argv, err := proxyCommand(s)
	if err != nil {
		return nil, err
	}
	return append(argv, "--config", s.ConfigFile, "--host", s.Host, "--port", s.Port), nil
}

// portInUse reports whether something already listens on the proxy's
// bind address. The pid is best effort and 0 when lsof is unavailable.
func portInUse(host string, port int) (int, bool) {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err == nil {
		_ = ln.Close()
		return 0, false
	}
	return lsofPID(port), true
}

func lsofPID(port int) int {
	out, err := exec.Command("lsof", "-ti", fmt.Sprintf("tcp:%d", port)).Output()
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return 0
	}
	pid, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return pid
}

package main

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/litellm-tools/litellmctl/internal/launchd"
)

var flagServiceLabel string

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage the launchd agent that keeps the proxy running",
	PersistentPreRunE: func(*cobra.Command, []string) error {
		if runtime.GOOS != "darwin" {
			return newUserErrorf("service management talks to launchd and only works on macOS")
		}
		return nil
	},
}

var serviceInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Write the agent plist and load it",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		s, err := resolveSettings()
		if err != nil {
			return err
		}
		svc, err := serviceFor(s)
		if err != nil {
			return err
		}
		if err := svc.Install(); err != nil {
			return cliError{err, "Could not install the launchd agent."}
		}
		log.Info("Agent installed", "label", svc.Label, "logs", filepath.Dir(svc.StdoutLog))
		return nil
	},
}

var serviceUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Unload the agent and remove its plist",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		svc := launchd.Service{Label: flagServiceLabel}
		if err := svc.Uninstall(); err != nil {
			return cliError{err, "Could not uninstall the launchd agent."}
		}
		log.Info("Agent removed", "label", svc.Label)
		return nil
	},
}

var serviceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what launchd knows about the agent",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		svc := launchd.Service{Label: flagServiceLabel}
		out, err := svc.Status()
		if err != nil {
			return cliError{err, "The agent does not seem to be loaded."}
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	serviceCmd.PersistentFlags().StringVar(&flagServiceLabel, "label", launchd.DefaultLabel, help["label"])
	serviceCmd.AddCommand(serviceInstallCmd, serviceUninstallCmd, serviceStatusCmd)
}

func serviceFor(s Settings) (launchd.Service, error) {
	dir, err := filepath.Abs(s.ProjectDir)
	if err != nil {
		return launchd.Service{}, fmt.Errorf("resolve project directory: %w", err)
	}
	logDir := filepath.Join(xdg.StateHome, "litellmctl")
	return launchd.Service{
		Label:      flagServiceLabel,
		ProjectDir: dir,
		StdoutLog:  filepath.Join(logDir, flagServiceLabel+".out.log"),
		StderrLog:  filepath.Join(logDir, flagServiceLabel+".err.log"),
	}, nil
}

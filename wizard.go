package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/litellm-tools/litellmctl/internal/envfile"
	"github.com/litellm-tools/litellmctl/internal/litellm"
	"github.com/litellm-tools/litellmctl/internal/preflight"
	"github.com/litellm-tools/litellmctl/internal/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactively generate the env file and config document",
	Args:  cobra.NoArgs,
	RunE:  runWizard,
}

func runWizard(*cobra.Command, []string) error {
	if !isInputTTY() {
		return newUserErrorf("the wizard needs an interactive terminal")
	}
	s, err := resolveSettings()
	if err != nil {
		return err
	}

	fmt.Println(stdoutStyles().AppName.Render("LiteLLM proxy setup"))
	fmt.Println(stdoutStyles().Comment.Render("Answers become " + s.EnvFile + " and " + s.ConfigFile + "."))
	fmt.Println()

	answers, err := wizard.Run(environSnapshot())
	if err != nil {
		//nolint: wrapcheck
		return err
	}

	if err := envfile.Write(s.EnvFile, wizard.EnvPairs(*answers)); err != nil {
		return cliError{err, "Could not write the env file."}
	}
	data, err := litellm.Marshal(wizard.BuildDocument(*answers))
	if err != nil {
		return cliError{err, "Could not render the config document."}
	}
	if err := os.WriteFile(s.ConfigFile, data, 0o600); err != nil {
		return cliError{err, "Could not write the config document."}
	}
	printArtifactsTable(s)

	if answers.GeneratedKey {
		log.Info("Generated a master key", "key", maskKey(answers.MasterKey))
		offerClipboard(answers.MasterKey)
	}

	log.Info("Validating the generated configuration")
	vars, err := envfile.Load(s.EnvFile)
	if err != nil {
		return err
	}
	report, err := preflight.Check(preflight.CheckInput{ConfigPath: s.ConfigFile, Env: vars})
	if err != nil {
		return err
	}
	for _, warning := range report.Warnings {
		log.Warn(warning)
	}
	if len(report.Providers) == 0 {
		log.Warn("No providers enabled, the proxy will start with an empty model list")
	}

	if runtime.GOOS == "darwin" {
		var install bool
		err := huh.NewConfirm().
			Title("Install the launchd agent so the proxy starts at login?").
			Value(&install).
			Run()
		if err == nil && install {
			svc, err := serviceFor(s)
			if err != nil {
				return err
			}
			if err := svc.Install(); err != nil {
				return cliError{err, "Could not install the launchd agent."}
			}
			log.Info("Agent installed", "label", svc.Label)
		}
	}

	var startNow bool
	err = huh.NewConfirm().
		Title("Start the proxy in the foreground now?").
		Value(&startNow).
		Run()
	if err == nil && startNow {
		return startProxy(s, false)
	}

	fmt.Println()
	fmt.Printf("Done. Start the proxy with %s.\n", stdoutStyles().InlineCode.Render("litellmctl start"))
	return nil
}

func printArtifactsTable(s Settings) {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(stdoutStyles().Comment).
		Row("env file", s.EnvFile).
		Row("config document", s.ConfigFile)
	fmt.Println(tbl)
}

func offerClipboard(key string) {
	var copyIt bool
	err := huh.NewConfirm().
		Title("Copy the master key to the clipboard?").
		Value(&copyIt).
		Run()
	if err != nil || !copyIt {
		return
	}
	if err := clipboard.WriteAll(key); err != nil {
		log.Warn("Could not reach the clipboard", "err", err)
		return
	}
	log.Info("Master key copied, it is also stored in the env file")
}

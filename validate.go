package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	xstrings "github.com/charmbracelet/x/exp/strings"
	"github.com/spf13/cobra"

	"github.com/litellm-tools/litellmctl/internal/envfile"
	"github.com/litellm-tools/litellmctl/internal/preflight"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the env file and config document without starting anything",
	Args:  cobra.NoArgs,
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&flagSkipValidate, "skip-validate", false, help["skip-validate"])
}

func runValidate(*cobra.Command, []string) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}
	s.SkipValidate = s.SkipValidate || flagSkipValidate

	vars, err := envfile.Load(s.EnvFile)
	if err != nil {
		return err
	}
	s = s.withEnvFile(vars)

	report, err := preflight.Check(preflight.CheckInput{
		ConfigPath:          s.ConfigFile,
		Env:                 vars,
		SkipPlaceholderScan: s.SkipValidate,
	})
	if err != nil {
		return err
	}

	sty := stdoutStyles()
	fmt.Printf("%s %s and %s are valid\n", sty.Check.String(), s.EnvFile, s.ConfigFile)
	if len(report.Providers) == 0 {
		fmt.Println(sty.Warning.Render("  no providers are enabled"))
	} else {
		names := make([]string, 0, len(report.Providers))
		for _, p := range report.Providers {
			names = append(names, p.String())
		}
		fmt.Printf("  providers: %s\n", xstrings.EnglishJoin(names, true))
	}
	if aliases := report.Document.Aliases(); len(aliases) > 0 {
		fmt.Printf("  models: %s\n", xstrings.EnglishJoin(aliases, true))
	}
	switch s.MasterKey {
	case "":
		fmt.Println(sty.Warning.Render("  no master key is set"))
	case insecureMasterKey:
		fmt.Println(sty.Warning.Render("  master key is the well-known default"))
	default:
		fmt.Printf("  master key: %s\n", maskKey(s.MasterKey))
	}
	for _, warning := range report.Warnings {
		log.Warn(warning)
	}
	return nil
}

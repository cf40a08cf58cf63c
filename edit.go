package main

import (
	"os"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"

	"github.com/litellm-tools/litellmctl/internal/preflight"
)

var editCmd = &cobra.Command{
	Use:       "edit [env|config]",
	Short:     "Open a generated file in your $EDITOR, then revalidate",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"env", "config"},
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := resolveSettings()
		if err != nil {
			return err
		}
		path := s.ConfigFile
		if len(args) > 0 && args[0] == "env" {
			path = s.EnvFile
		}
		if _, err := os.Stat(path); err != nil {
			return &preflight.MissingFileError{Path: path}
		}
		c, err := editor.Cmd("litellmctl", path)
		if err != nil {
			return cliError{err, "Could not find an editor."}
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return cliError{err, "The editor exited with an error."}
		}
		return runValidate(cmd, nil)
	},
}

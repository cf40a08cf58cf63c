package main

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed guide.md
var guideMD string

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Read the setup guide in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if !isOutputTTY() {
			fmt.Print(guideMD)
			return nil
		}
		const width = 80
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return cliError{err, "Could not build the markdown renderer."}
		}
		out, err := renderer.Render(guideMD)
		if err != nil {
			return cliError{err, "Could not render the guide."}
		}
		fmt.Print(out)
		return nil
	},
}

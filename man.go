package main

import (
	"fmt"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

var manCmd = &cobra.Command{
	Use:    "man",
	Short:  "Generate man pages",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		manPage, err := mcobra.NewManPage(1, rootCmd)
		if err != nil {
			//nolint: wrapcheck
			return err
		}
		manPage = manPage.WithSection("Copyright", "(c) 2024 LiteLLM Tools.\nReleased under MIT license.")
		fmt.Println(manPage.Build(roff.NewDocument()))
		return nil
	},
}

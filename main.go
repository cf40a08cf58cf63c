package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/litellm-tools/litellmctl/internal/preflight"
)

// Build vars.
var (
	//nolint: gochecknoglobals
	version = "dev"
	commit  = ""
	date    = ""
)

var (
	flagEnvFile      string
	flagConfigFile   string
	flagProjectDir   string
	flagDryRun       bool
	flagSkipValidate bool
)

var help = map[string]string{
	"env-file":      "Path to the env file",
	"config-file":   "Path to the proxy config document",
	"project-dir":   "Directory holding the proxy's generated files",
	"dry-run":       "Validate everything and stop before starting the proxy",
	"skip-validate": "Skip the placeholder scan of the config document",
	"wait":          "Keep polling until the proxy answers or the wait runs out",
	"label":         "launchd label for the agent",
}

var rootCmd = &cobra.Command{
	Use:   "litellmctl [command]",
	Short: "Configure, validate, and run a LiteLLM proxy",
	Long:  "litellmctl turns a few answers into a working LiteLLM proxy: it writes the env file and config document, refuses to start anything that still holds placeholders, and keeps the proxy running.",
	Example: strings.Join([]string{
		"  litellmctl wizard",
		"  litellmctl start --dry-run",
		"  litellmctl status --wait 1m",
	}, "\n"),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = buildVersion()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.SetUsageFunc(usageFunc)
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		_ = usageFunc(cmd)
	})
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newFlagParseError(err)
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagEnvFile, "env-file", "", help["env-file"])
	pf.StringVar(&flagConfigFile, "config-file", "", help["config-file"])
	pf.StringVarP(&flagProjectDir, "project-dir", "C", "", help["project-dir"])

	rootCmd.AddCommand(
		wizardCmd,
		validateCmd,
		startCmd,
		statusCmd,
		serviceCmd,
		editCmd,
		guideCmd,
		manCmd,
	)
}

func buildVersion() string {
	result := "litellmctl version " + version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	return result
}

func useLine(cmd *cobra.Command) string {
	appName := filepath.Base(os.Args[0])
	if stdoutRenderer().ColorProfile() == termenv.TrueColor {
		appName = makeGradientText(stdoutStyles().AppName, appName)
	}
	rest := strings.TrimPrefix(cmd.UseLine(), cmd.Root().Name())
	return appName + stdoutStyles().CliArgs.Render(rest)
}

func usageFunc(cmd *cobra.Command) error {
	fmt.Printf("%s\n\nUsage:\n  %s\n\n", cmd.Short, useLine(cmd))
	if cmd.HasAvailableSubCommands() {
		fmt.Println("Commands:")
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() {
				continue
			}
			printUsageRow(stdoutStyles().Flag.Render(sub.Name()), sub.Short)
		}
		fmt.Println()
	}
	fmt.Println("Options:")
	cmd.LocalFlags().VisitAll(printUsageFlag)
	if cmd.HasAvailableInheritedFlags() {
		fmt.Println()
		fmt.Println("Global options:")
		cmd.InheritedFlags().VisitAll(printUsageFlag)
	}
	if cmd == cmd.Root() {
		desc, example := randomExample()
		fmt.Printf(
			"\nExample:\n  %s\n  %s\n",
			stdoutStyles().Comment.Render("# "+desc),
			cheapHighlighting(stdoutStyles(), example),
		)
	}
	return nil
}

func printUsageFlag(f *flag.Flag) {
	if f.Hidden {
		return
	}
	sty := stdoutStyles()
	usage := sty.Flag.Render("--" + f.Name)
	if f.Shorthand != "" {
		usage = sty.Flag.Render("-"+f.Shorthand) + sty.FlagComma.String() + " " + usage
	}
	printUsageRow(usage, f.Usage)
}

func printUsageRow(left, desc string) {
	const col = 22
	pad := col - lipgloss.Width(left)
	if pad < 1 {
		pad = 1
	}
	fmt.Printf("  %s%s%s\n", left, strings.Repeat(" ", pad), stdoutStyles().FlagDesc.Render(desc))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		handleError(err)
		os.Exit(1)
	}
}

func handleError(err error) {
	sty := stderrStyles()

	if errors.Is(err, huh.ErrUserAborted) {
		fmt.Fprintln(os.Stderr, sty.Comment.Render("Aborted, nothing was written."))
		return
	}

	var fpe flagParseError
	if errors.As(err, &fpe) {
		fmt.Fprintf(os.Stderr, "\n%s %s\n\n",
			sty.ErrorHeader.String(),
			fmt.Sprintf(sty.ErrorDetails.Render(fpe.ReasonFormat()), sty.Flag.Render(fpe.Flag())))
		return
	}

	reason, details, hint := explainError(err)
	fmt.Fprintf(os.Stderr, "\n%s %s\n", sty.ErrorHeader.String(), sty.ErrorDetails.Render(reason))
	if details != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n", sty.ErrPadding.Render(sty.ErrorDetails.Render(details)))
	}
	if hint != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n", sty.ErrPadding.Render(sty.Comment.Render(hint)))
	}
	fmt.Fprintln(os.Stderr)
}

// explainError maps the error vocabulary onto a header line, a detail
// block, and an optional next step.
func explainError(err error) (reason, details, hint string) {
	var (
		missing  *preflight.MissingFileError
		variable *preflight.MissingVariableError
		ph       *preflight.PlaceholderValueError
		inUse    *preflight.PortInUseError
		ce       cliError
	)
	switch {
	case errors.As(err, &missing):
		return "A required file is missing.",
			missing.Path,
			"Run `litellmctl wizard` to generate the proxy files."
	case errors.As(err, &variable):
		return fmt.Sprintf("%s is enabled but not fully configured.", variable.Provider),
			variable.Error(),
			fmt.Sprintf("Set %s in the env file, or re-run `litellmctl wizard`.", variable.Var)
	case errors.As(err, &ph):
		if ph.Var != "" {
			return "A template placeholder survived into the environment.",
				ph.Error(),
				fmt.Sprintf("Replace the value of %s with a real one.", ph.Var)
		}
		return "The config document still holds template placeholders.",
			strings.Join(ph.Lines, "\n"),
			"Fill in the real values, or pass --skip-validate to start anyway."
	case errors.As(err, &inUse):
		return "The proxy port is taken.",
			inUse.Error(),
			"Stop the other process or pick a different LITELLM_PORT."
	case errors.As(err, &ce):
		return ce.Reason(), ce.Error(), ""
	default:
		return "Something went wrong.", err.Error(), ""
	}
}

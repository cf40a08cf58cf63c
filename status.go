package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"slices"
	"time"

	timea "github.com/caarlos0/timea.go"
	tea "github.com/charmbracelet/bubbletea"
	xstrings "github.com/charmbracelet/x/exp/strings"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/litellm-tools/litellmctl/internal/envfile"
	"github.com/litellm-tools/litellmctl/internal/preflight"
)

const (
	probeTimeout = 10 * time.Second
	pollEvery    = time.Second
)

var statusWait time.Duration

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe a running proxy and report on the generated files",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().VarP(newDurationFlag(0, &statusWait), "wait", "w", help["wait"])
}

func runStatus(cmd *cobra.Command, _ []string) error {
	s, err := resolveSettings()
	if err != nil {
		return err
	}
	vars, err := envfile.Load(s.EnvFile)
	if err == nil {
		s = s.withEnvFile(vars)
	} else {
		var missing *preflight.MissingFileError
		if !errors.As(err, &missing) {
			return err
		}
	}

	base := proxyBaseURL(s)
	ctx := cmd.Context()

	if statusWait > 0 {
		if err := waitForReady(ctx, base, statusWait); err != nil {
			return err
		}
	}

	models, probeErr := probeProxy(ctx, base, s.MasterKey)
	printStatus(s, base, models, probeErr)
	if probeErr != nil {
		return cliError{probeErr, "The proxy did not answer."}
	}
	return nil
}

// proxyBaseURL points probes at loopback when the proxy binds all
// interfaces.
func proxyBaseURL(s Settings) string {
	host := s.Host
	if host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, s.Port)
}

func probeProxy(ctx context.Context, base, masterKey string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var models []string
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return checkHealth(ctx, base)
	})
	g.Go(func() error {
		var err error
		models, err = listModels(ctx, base, masterKey)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return models, nil
}

func checkHealth(ctx context.Context, base string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health/readiness", nil)
	if err != nil {
		return fmt.Errorf("build readiness request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("readiness probe: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("readiness probe: unexpected status %s", resp.Status)
	}
	return nil
}

func listModels(ctx context.Context, base, masterKey string) ([]string, error) {
	client := openai.NewClient(
		option.WithBaseURL(base+"/v1/"),
		option.WithAPIKey(masterKey),
	)
	page, err := client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	models := make([]string, 0, len(page.Data))
	for _, model := range page.Data {
		models = append(models, model.ID)
	}
	slices.Sort(models)
	return models, nil
}

func printStatus(s Settings, base string, models []string, probeErr error) {
	sty := stdoutStyles()
	if probeErr != nil {
		fmt.Printf("%s proxy unreachable at %s\n", sty.Warning.Render("●"), base)
	} else {
		fmt.Printf("%s proxy answering at %s\n", sty.Check.String(), sty.Link.Render(base))
		if len(models) > 0 {
			fmt.Printf("  models: %s\n", xstrings.EnglishJoin(models, true))
		}
	}
	if doc, err := preflight.LoadDocument(s.ConfigFile); err == nil {
		if aliases := doc.Aliases(); len(aliases) > 0 {
			fmt.Printf("  configured: %s\n", xstrings.EnglishJoin(aliases, true))
		}
	}
	if s.MasterKey != "" {
		fmt.Printf("  master key: %s\n", maskKey(s.MasterKey))
	}
	for _, path := range []string{s.EnvFile, s.ConfigFile} {
		fi, err := os.Stat(path)
		if err != nil {
			fmt.Printf("  %s %s\n", path, sty.Warning.Render("missing"))
			continue
		}
		fmt.Printf("  %s %s\n", path, sty.Timeago.Render("written "+timea.Of(fi.ModTime())))
	}
}

// waitForReady polls the readiness endpoint until it answers or the wait
// runs out. On a TTY the wait is animated.
func waitForReady(ctx context.Context, base string, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	poll := func() error {
		for {
			probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second) //nolint:mnd
			err := checkHealth(probeCtx, base)
			cancel()
			if err == nil {
				return nil
			}
			if time.Now().After(deadline) {
				return newUserErrorf("proxy did not come up within %s", wait)
			}
			select {
			case <-ctx.Done():
				//nolint: wrapcheck
				return ctx.Err()
			case <-time.After(pollEvery):
			}
		}
	}

	if !isErrTTY() {
		return poll()
	}

	p := tea.NewProgram(newWaitModel("Waiting for the proxy"), tea.WithOutput(os.Stderr))
	go func() {
		p.Send(waitDoneMsg{err: poll()})
	}()
	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("wait animation: %w", err)
	}
	return m.(waitModel).err
}

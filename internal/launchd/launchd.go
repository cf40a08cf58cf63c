// Package launchd renders and manages the macOS LaunchAgent that keeps
// the proxy running across logins.
package launchd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultLabel is the reverse-DNS agent label used when the user does not
// pick their own.
const DefaultLabel = "com.local.litellm.proxy"

// plistTemplate is substituted literally: the four __NAME__ markers are
// replaced with no other templating applied, so the rendered file is easy
// to diff against this source.
const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>__LABEL__</string>
	<key>ProgramArguments</key>
	<array>
		<string>/bin/sh</string>
		<string>-c</string>
		<string>cd "__PROJECT_DIR__" &amp;&amp; exec litellmctl start</string>
	</array>
	<key>WorkingDirectory</key>
	<string>__PROJECT_DIR__</string>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
	<key>StandardOutPath</key>
	<string>__STDOUT_LOG__</string>
	<key>StandardErrorPath</key>
	<string>__STDERR_LOG__</string>
	<key>EnvironmentVariables</key>
	<dict>
		<key>PATH</key>
		<string>/opt/homebrew/bin:/usr/local/bin:/usr/bin:/bin</string>
	</dict>
</dict>
</plist>
`

// Service describes one agent installation.
type Service struct {
	Label      string
	ProjectDir string
	StdoutLog  string
	StderrLog  string
}

// Render fills the plist template for this service.
func (s Service) Render() string {
	out := plistTemplate
	out = strings.ReplaceAll(out, "__LABEL__", s.Label)
	out = strings.ReplaceAll(out, "__PROJECT_DIR__", s.ProjectDir)
	out = strings.ReplaceAll(out, "__STDOUT_LOG__", s.StdoutLog)
	out = strings.ReplaceAll(out, "__STDERR_LOG__", s.StderrLog)
	return out
}

// PlistPath is where the rendered agent lives for the current user.
func (s Service) PlistPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "Library", "LaunchAgents", s.Label+".plist"), nil
}

// Install writes the rendered plist and loads it. Newer launchctl wants
// bootstrap; load -w covers macOS versions before it.
func (s Service) Install() error {
	path, err := s.PlistPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create LaunchAgents directory: %w", err)
	}
	for _, log := range []string{s.StdoutLog, s.StderrLog} {
		if err := os.MkdirAll(filepath.Dir(log), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(s.Render()), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := launchctl("bootstrap", guiDomain(), path); err != nil {
		if err := launchctl("load", "-w", path); err != nil {
			return fmt.Errorf("load agent: %w", err)
		}
	}
	return nil
}

// Uninstall unloads the agent and removes its plist. Both steps tolerate
// an agent that was never loaded.
func (s Service) Uninstall() error {
	path, err := s.PlistPath()
	if err != nil {
		return err
	}
	if err := launchctl("bootout", guiDomain()+"/"+s.Label); err != nil {
		_ = launchctl("unload", path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Status returns launchctl's view of the agent.
func (s Service) Status() (string, error) {
	out, err := exec.Command("launchctl", "print", guiDomain()+"/"+s.Label).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("agent %s is not loaded", s.Label)
	}
	return string(out), nil
}

func launchctl(args ...string) error {
	cmd := exec.Command("launchctl", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("launchctl %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

func guiDomain() string {
	return fmt.Sprintf("gui/%d", os.Getuid())
}

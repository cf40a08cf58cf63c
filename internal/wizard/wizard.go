// Package wizard collects proxy and provider settings interactively and
// turns them into the env file and config document pair.
package wizard

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/exp/ordered"

	"github.com/litellm-tools/litellmctl/internal/placeholder"
)

const (
	defaultHost       = "0.0.0.0"
	defaultPort       = "4000"
	defaultAPIVersion = "2024-02-15-preview"
	defaultLocation   = "us-central1"
	defaultNoProxy    = "localhost,127.0.0.1,0.0.0.0"
)

// Run walks the interactive flow and returns the collected answers. The
// env snapshot seeds field defaults, so a re-run starts from the previous
// values. Aborting the form returns [huh.ErrUserAborted] untouched and
// nothing is written.
func Run(env map[string]string) (*Answers, error) {
	a := &Answers{
		Host:            ordered.First(env["LITELLM_HOST"], defaultHost),
		Port:            ordered.First(env["LITELLM_PORT"], defaultPort),
		SSLCertFile:     env["SSL_CERT_FILE"],
		NoProxy:         ordered.First(env["NO_PROXY"], defaultNoProxy),
		AzureEnabled:    true,
		AzureAPIVersion: defaultAPIVersion,
		VertexEnabled:   true,
		VertexProject:   env["VERTEX_PROJECT"],
		VertexLocation:  ordered.First(env["VERTEX_LOCATION"], defaultLocation),
	}
	a.AzureDeployments = make([]Deployment, len(azureAliases))
	for i, alias := range azureAliases {
		a.AzureDeployments[i].Alias = alias
	}

	form := huh.NewForm(
		serverGroup(a),
		providersGroup(a),
		azureGroup(a),
		azureDeploymentsGroup(a),
		vertexGroup(a),
		qwenGroup(a),
	)
	if err := form.Run(); err != nil {
		return nil, err
	}

	a.AzureAPIBase = NormalizeEndpoint(a.AzureAPIBase)
	if strings.TrimSpace(a.MasterKey) == "" {
		a.MasterKey = NewMasterKey()
		a.GeneratedKey = true
	}
	return a, nil
}

func serverGroup(a *Answers) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title("Bind host").
			Description("Interface the proxy listens on.").
			Value(&a.Host).
			Validate(required("host")),
		huh.NewInput().
			Title("Bind port").
			Value(&a.Port).
			Validate(validatePort),
		huh.NewInput().
			Title("Corporate CA bundle (SSL_CERT_FILE)").
			Description("Path to a PEM bundle. Leave blank to use the system roots.").
			Value(&a.SSLCertFile).
			Validate(optionalFile),
		huh.NewInput().
			Title("Master key").
			Description("Clients authenticate with this key. Leave blank to generate one.").
			EchoMode(huh.EchoModePassword).
			Value(&a.MasterKey),
	)
}

func providersGroup(a *Answers) *huh.Group {
	return huh.NewGroup(
		huh.NewConfirm().Title("Enable Azure OpenAI?").Value(&a.AzureEnabled),
		huh.NewConfirm().Title("Enable Google Vertex AI?").Value(&a.VertexEnabled),
		huh.NewConfirm().Title("Enable Alibaba DashScope (Qwen)?").Value(&a.QwenEnabled),
	)
}

func azureGroup(a *Answers) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title("AZURE_CLIENT_ID").
			Description("Service principal used for Entra ID auth.").
			Value(&a.AzureClientID).
			Validate(requiredReal("AZURE_CLIENT_ID")),
		huh.NewInput().
			Title("AZURE_CLIENT_SECRET").
			EchoMode(huh.EchoModePassword).
			Value(&a.AzureClientSecret).
			Validate(required("AZURE_CLIENT_SECRET")),
		huh.NewInput().
			Title("AZURE_TENANT_ID").
			Value(&a.AzureTenantID).
			Validate(requiredReal("AZURE_TENANT_ID")),
		huh.NewInput().
			Title("Azure endpoint").
			Placeholder("https://my-resource.openai.azure.com/").
			Value(&a.AzureAPIBase).
			Validate(requiredReal("endpoint")),
		huh.NewInput().
			Title("Azure API version").
			Value(&a.AzureAPIVersion).
			Validate(required("API version")),
		huh.NewInput().
			Title("HTTPS proxy for Azure (AZURE_PROXY)").
			Description("Leave blank for a direct connection.").
			Value(&a.AzureProxy),
	).WithHideFunc(func() bool { return !a.AzureEnabled })
}

func azureDeploymentsGroup(a *Answers) *huh.Group {
	fields := []huh.Field{
		huh.NewNote().
			Title("Azure deployments").
			Description("Name the deployment behind each alias. Leave one blank to skip that alias."),
	}
	for i := range a.AzureDeployments {
		fields = append(fields, huh.NewInput().
			Title(a.AzureDeployments[i].Alias).
			Placeholder("deployment name").
			Value(&a.AzureDeployments[i].Name))
	}
	return huh.NewGroup(fields...).WithHideFunc(func() bool { return !a.AzureEnabled })
}

func vertexGroup(a *Answers) *huh.Group {
	opts := make([]huh.Option[string], 0, len(vertexCatalog))
	for _, m := range vertexCatalog {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", m.Alias, m.Model), m.Alias).Selected(true))
	}
	return huh.NewGroup(
		huh.NewInput().
			Title("VERTEX_PROJECT").
			Description("Google Cloud project ID.").
			Value(&a.VertexProject),
		huh.NewInput().
			Title("VERTEX_LOCATION").
			Value(&a.VertexLocation).
			Validate(required("VERTEX_LOCATION")),
		huh.NewInput().
			Title("HTTPS proxy for Vertex (GEMINI_PROXY)").
			Value(&a.GeminiProxy),
		huh.NewInput().
			Title("Service account key (GOOGLE_APPLICATION_CREDENTIALS)").
			Description("Leave blank to use application-default credentials.").
			Value(&a.VertexCredentials).
			Validate(optionalFile),
		huh.NewMultiSelect[string]().
			Title("Gemini models to expose").
			Options(opts...).
			Value(&a.VertexModels),
	).WithHideFunc(func() bool { return !a.VertexEnabled })
}

func qwenGroup(a *Answers) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title("DASHSCOPE_API_KEY").
			EchoMode(huh.EchoModePassword).
			Value(&a.DashScopeAPIKey).
			Validate(required("DASHSCOPE_API_KEY")),
		huh.NewInput().
			Title("HTTPS proxy for DashScope (QWEN_PROXY)").
			Value(&a.QwenProxy),
	).WithHideFunc(func() bool { return !a.QwenEnabled })
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func requiredReal(name string) func(string) error {
	return func(s string) error {
		if err := required(name)(s); err != nil {
			return err
		}
		if placeholder.IsPlaceholder(s) {
			return fmt.Errorf("%s looks like a template placeholder", name)
		}
		return nil
	}
}

func validatePort(s string) error {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}
	return nil
}

func optionalFile(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := os.Stat(s); err != nil {
		return fmt.Errorf("no file at %s", s)
	}
	return nil
}

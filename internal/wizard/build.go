package wizard

import (
	"strings"

	"github.com/litellm-tools/litellmctl/internal/envfile"
	"github.com/litellm-tools/litellmctl/internal/litellm"
)

// azureAliases are the client-facing aliases offered for Azure, prompted
// in this order. A blank deployment name skips the alias.
var azureAliases = []string{
	"gpt-4",
	"gpt-4.1",
	"gpt-4.1-mini",
	"gpt-5",
	"gpt-5-mini",
	"gpt-5-nano",
}

// vertexCatalog maps client-facing aliases to Vertex model identifiers.
var vertexCatalog = []struct {
	Alias string
	Model string
}{
	{"gemini-pro", "gemini-1.5-pro"},
	{"gemini-3-flash", "gemini-3-flash"},
	{"gemini-3-pro", "gemini-3-pro"},
}

// Deployment pairs a client-facing alias with an Azure deployment name.
type Deployment struct {
	Alias string
	Name  string
}

// Answers is everything the wizard collected. EnvPairs and BuildDocument
// turn one Answers value into the artifact pair deterministically, which
// keeps the interactive flow separate from what gets written to disk.
type Answers struct {
	Host        string
	Port        string
	SSLCertFile string
	MasterKey   string
	// GeneratedKey marks a master key minted by the wizard rather than
	// typed by the user.
	GeneratedKey bool
	NoProxy      string

	AzureEnabled      bool
	AzureClientID     string
	AzureClientSecret string
	AzureTenantID     string
	AzureAPIBase      string
	AzureAPIVersion   string
	AzureProxy        string
	AzureDeployments  []Deployment

	VertexEnabled     bool
	VertexProject     string
	VertexLocation    string
	GeminiProxy       string
	VertexCredentials string
	VertexModels      []string

	QwenEnabled     bool
	DashScopeAPIKey string
	QwenProxy       string
}

// EnvPairs renders the env file entries in their stable order: runtime
// settings first, then one block per enabled provider.
func EnvPairs(a Answers) []envfile.Pair {
	pairs := []envfile.Pair{
		{Key: "LITELLM_HOST", Value: a.Host},
		{Key: "LITELLM_PORT", Value: a.Port},
		{Key: "SSL_CERT_FILE", Value: a.SSLCertFile},
		{Key: "LITELLM_MASTER_KEY", Value: a.MasterKey},
		{Key: "NO_PROXY", Value: a.NoProxy},
	}
	if a.AzureEnabled {
		pairs = append(pairs,
			envfile.Pair{Key: "AZURE_CLIENT_ID", Value: a.AzureClientID},
			envfile.Pair{Key: "AZURE_CLIENT_SECRET", Value: a.AzureClientSecret},
			envfile.Pair{Key: "AZURE_TENANT_ID", Value: a.AzureTenantID},
			envfile.Pair{Key: "AZURE_PROXY", Value: a.AzureProxy},
		)
	}
	if a.VertexEnabled {
		pairs = append(pairs,
			envfile.Pair{Key: "VERTEX_PROJECT", Value: a.VertexProject},
			envfile.Pair{Key: "VERTEX_LOCATION", Value: a.VertexLocation},
			envfile.Pair{Key: "GEMINI_PROXY", Value: a.GeminiProxy},
		)
		if a.VertexCredentials != "" {
			pairs = append(pairs, envfile.Pair{Key: "GOOGLE_APPLICATION_CREDENTIALS", Value: a.VertexCredentials})
		}
	}
	if a.QwenEnabled {
		pairs = append(pairs,
			envfile.Pair{Key: "DASHSCOPE_API_KEY", Value: a.DashScopeAPIKey},
			envfile.Pair{Key: "QWEN_PROXY", Value: a.QwenProxy},
		)
	}
	return pairs
}

// BuildDocument renders the config document for one set of answers.
// Secrets are referenced through os.environ indirection; only the master
// key is written literally, which is the form the proxy expects.
func BuildDocument(a Answers) *litellm.Document {
	doc := &litellm.Document{
		ModelList: []litellm.ModelEntry{},
		RouterSettings: litellm.RouterSettings{
			RoutingStrategy: "simple-shuffle",
			ModelGroupAlias: map[string][]string{"default-model": {}},
		},
		GeneralSettings: litellm.GeneralSettings{MasterKey: a.MasterKey},
		Settings:        litellm.FeatureFlags{DropParams: true, SetVerbose: false},
	}
	if a.AzureEnabled {
		for _, d := range a.AzureDeployments {
			name := strings.TrimSpace(d.Name)
			if name == "" {
				continue
			}
			params := litellm.Params{
				Model:      litellm.ProviderAzure.Prefix() + name,
				APIBase:    a.AzureAPIBase,
				APIVersion: a.AzureAPIVersion,
				UseAzureAD: true,
				SSLVerify:  litellm.SSLVerify(a.SSLCertFile),
				RPM:        1000,
			}
			if a.AzureProxy != "" {
				params.HTTPProxy = "os.environ/AZURE_PROXY"
			}
			doc.ModelList = append(doc.ModelList, litellm.ModelEntry{ModelName: d.Alias, Params: params})
		}
	}
	if a.VertexEnabled {
		selected := map[string]bool{}
		for _, alias := range a.VertexModels {
			selected[alias] = true
		}
		for _, m := range vertexCatalog {
			if !selected[m.Alias] {
				continue
			}
			params := litellm.Params{
				Model:          litellm.ProviderVertex.Prefix() + m.Model,
				SSLVerify:      litellm.SSLVerify(a.SSLCertFile),
				VertexProject:  "os.environ/VERTEX_PROJECT",
				VertexLocation: "os.environ/VERTEX_LOCATION",
			}
			if a.GeminiProxy != "" {
				params.HTTPProxy = "os.environ/GEMINI_PROXY"
			}
			doc.ModelList = append(doc.ModelList, litellm.ModelEntry{ModelName: m.Alias, Params: params})
		}
	}
	if a.QwenEnabled {
		params := litellm.Params{
			Model:     litellm.ProviderDashScope.Prefix() + "qwen-max",
			SSLVerify: litellm.SSLVerify(a.SSLCertFile),
			APIKey:    "os.environ/DASHSCOPE_API_KEY",
		}
		if a.QwenProxy != "" {
			params.HTTPProxy = "os.environ/QWEN_PROXY"
		}
		doc.ModelList = append(doc.ModelList, litellm.ModelEntry{ModelName: "qwen-max", Params: params})
	}
	return doc
}

// NormalizeEndpoint gives the Azure endpoint its trailing slash.
func NormalizeEndpoint(base string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/"
}

// Package litellm models the LiteLLM proxy's declarative config document
// and the upstream providers it routes to.
package litellm

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider identifies an upstream model backend.
type Provider int

const (
	ProviderAzure Provider = iota
	ProviderVertex
	ProviderDashScope
)

// Providers lists every known backend in detection order.
var Providers = []Provider{ProviderAzure, ProviderVertex, ProviderDashScope}

// Prefix returns the model identifier prefix that marks an entry as
// belonging to this backend.
func (p Provider) Prefix() string {
	switch p {
	case ProviderAzure:
		return "azure/"
	case ProviderVertex:
		return "vertex_ai/"
	case ProviderDashScope:
		return "dashscope/"
	}
	return ""
}

func (p Provider) String() string {
	switch p {
	case ProviderAzure:
		return "Azure OpenAI"
	case ProviderVertex:
		return "Vertex AI"
	case ProviderDashScope:
		return "DashScope"
	}
	return "unknown"
}

// RequiredVars lists the environment variables that must be set, and hold
// real values, before the proxy may start with this backend enabled.
func (p Provider) RequiredVars() []string {
	switch p {
	case ProviderAzure:
		return []string{"AZURE_CLIENT_ID", "AZURE_CLIENT_SECRET", "AZURE_TENANT_ID"}
	case ProviderVertex:
		return []string{"VERTEX_PROJECT", "VERTEX_LOCATION"}
	case ProviderDashScope:
		return []string{"DASHSCOPE_API_KEY"}
	}
	return nil
}

// SSLVerify holds either a CA bundle path or a boolean toggle. LiteLLM
// accepts both shapes, so parsing keeps whatever scalar the document has.
type SSLVerify string

// UnmarshalYAML implements [yaml.Unmarshaler].
func (s *SSLVerify) UnmarshalYAML(node *yaml.Node) error {
	*s = SSLVerify(node.Value)
	return nil
}

// Params is the litellm_params block of a single model route.
type Params struct {
	Model          string    `yaml:"model"`
	APIBase        string    `yaml:"api_base,omitempty"`
	APIVersion     string    `yaml:"api_version,omitempty"`
	UseAzureAD     bool      `yaml:"use_azure_ad,omitempty"`
	SSLVerify      SSLVerify `yaml:"ssl_verify,omitempty"`
	HTTPProxy      string    `yaml:"http_proxy,omitempty"`
	RPM            int       `yaml:"rpm,omitempty"`
	VertexProject  string    `yaml:"vertex_project,omitempty"`
	VertexLocation string    `yaml:"vertex_location,omitempty"`
	APIKey         string    `yaml:"api_key,omitempty"`
}

// Provider derives the upstream backend from the model identifier prefix.
// The second return is false for entries with no recognized prefix.
func (p Params) Provider() (Provider, bool) {
	for _, prov := range Providers {
		if strings.HasPrefix(p.Model, prov.Prefix()) {
			return prov, true
		}
	}
	return 0, false
}

// ModelEntry maps a client-facing alias to one backend route.
type ModelEntry struct {
	ModelName string `yaml:"model_name"`
	Params    Params `yaml:"litellm_params"`
}

// RouterSettings configures how the proxy spreads traffic across routes.
type RouterSettings struct {
	RoutingStrategy string              `yaml:"routing_strategy"`
	ModelGroupAlias map[string][]string `yaml:"model_group_alias"`
}

// GeneralSettings carries proxy-wide authentication settings.
type GeneralSettings struct {
	MasterKey string `yaml:"master_key"`
}

// FeatureFlags is the litellm_settings block.
type FeatureFlags struct {
	DropParams bool `yaml:"drop_params"`
	SetVerbose bool `yaml:"set_verbose"`
}

// Document is the typed form of the proxy's config.yaml.
type Document struct {
	ModelList       []ModelEntry    `yaml:"model_list"`
	RouterSettings  RouterSettings  `yaml:"router_settings"`
	GeneralSettings GeneralSettings `yaml:"general_settings"`
	Settings        FeatureFlags    `yaml:"litellm_settings"`
}

// Providers returns the backends the document routes to, deduplicated, in
// detection order. Repeating a backend across entries has no extra effect.
func (d *Document) Providers() []Provider {
	seen := map[Provider]bool{}
	for _, entry := range d.ModelList {
		if prov, ok := entry.Params.Provider(); ok {
			seen[prov] = true
		}
	}
	var out []Provider
	for _, prov := range Providers {
		if seen[prov] {
			out = append(out, prov)
		}
	}
	return out
}

// Aliases returns the client-facing model names in document order.
func (d *Document) Aliases() []string {
	out := make([]string, 0, len(d.ModelList))
	for _, entry := range d.ModelList {
		out = append(out, entry.ModelName)
	}
	return out
}

// Parse decodes a config document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse config document: %w", err)
	}
	return &doc, nil
}

// Marshal renders the document the way the proxy expects it, two-space
// indented with a trailing newline.
func Marshal(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshal config document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshal config document: %w", err)
	}
	return buf.Bytes(), nil
}

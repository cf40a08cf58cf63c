package preflight

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/litellm-tools/litellmctl/internal/litellm"
)

const azureDoc = `model_list:
  - model_name: gpt-4
    litellm_params:
      model: azure/gpt4-prod
      api_base: https://acme-ml.openai.azure.com/
      api_version: 2024-02-15-preview
      use_azure_ad: true
      rpm: 1000
`

const vertexDoc = `model_list:
  - model_name: gemini-pro
    litellm_params:
      model: vertex_ai/gemini-1.5-pro
      vertex_project: os.environ/VERTEX_PROJECT
      vertex_location: os.environ/VERTEX_LOCATION
`

const dashScopeDoc = `model_list:
  - model_name: qwen-max
    litellm_params:
      model: dashscope/qwen-max
      api_key: os.environ/DASHSCOPE_API_KEY
`

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func azureEnv() map[string]string {
	return map[string]string{
		"AZURE_CLIENT_ID":     "11111111-2222-3333-4444-555555555555",
		"AZURE_CLIENT_SECRET": "s3cr3t~value",
		"AZURE_TENANT_ID":     "66666666-7777-8888-9999-000000000000",
	}
}

func TestCheckMissingConfig(t *testing.T) {
	_, err := Check(CheckInput{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		Env:        map[string]string{},
	})
	var missing *MissingFileError
	require.ErrorAs(t, err, &missing)
	require.Contains(t, missing.Path, "config.yaml")
}

func TestCheckMalformedConfig(t *testing.T) {
	path := writeDoc(t, "model_list:\n  - model_name: [broken\n")
	_, err := Check(CheckInput{ConfigPath: path, Env: map[string]string{}})
	require.Error(t, err)
	var missing *MissingFileError
	require.NotErrorAs(t, err, &missing)
}

func TestCheckPasses(t *testing.T) {
	path := writeDoc(t, dashScopeDoc)
	report, err := Check(CheckInput{
		ConfigPath: path,
		Env:        map[string]string{"DASHSCOPE_API_KEY": "sk-d4e5f6a7b8c9"},
	})
	require.NoError(t, err)
	require.Equal(t, []litellm.Provider{litellm.ProviderDashScope}, report.Providers)
	require.Empty(t, report.Warnings)
}

func TestCheckMissingVariable(t *testing.T) {
	path := writeDoc(t, azureDoc)
	env := azureEnv()
	delete(env, "AZURE_CLIENT_SECRET")
	_, err := Check(CheckInput{ConfigPath: path, Env: env})
	var missing *MissingVariableError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "AZURE_CLIENT_SECRET", missing.Var)
	require.Equal(t, "Azure OpenAI", missing.Provider)
}

func TestCheckBlankVariableCountsAsMissing(t *testing.T) {
	path := writeDoc(t, dashScopeDoc)
	_, err := Check(CheckInput{
		ConfigPath: path,
		Env:        map[string]string{"DASHSCOPE_API_KEY": "   "},
	})
	var missing *MissingVariableError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "DASHSCOPE_API_KEY", missing.Var)
}

func TestCheckPlaceholderVariable(t *testing.T) {
	path := writeDoc(t, azureDoc)
	env := azureEnv()
	env["AZURE_TENANT_ID"] = "your-tenant-id"
	_, err := Check(CheckInput{ConfigPath: path, Env: env})
	var ph *PlaceholderValueError
	require.ErrorAs(t, err, &ph)
	require.Equal(t, "AZURE_TENANT_ID", ph.Var)
	require.Equal(t, "your-tenant-id", ph.Value)
}

func TestCheckDocumentTemplateScan(t *testing.T) {
	path := writeDoc(t, `model_list:
  - model_name: gpt-4
    litellm_params:
      model: azure/gpt4-prod
      api_base: https://YOUR_RESOURCE_NAME.openai.azure.com/
      ssl_verify: /path/to/ca-bundle.pem
      use_azure_ad: true
`)
	_, err := Check(CheckInput{ConfigPath: path, Env: azureEnv()})
	var ph *PlaceholderValueError
	require.ErrorAs(t, err, &ph)
	require.Empty(t, ph.Var)
	require.Len(t, ph.Lines, 2)
	require.Contains(t, ph.Lines[0], "line 5")
	require.Contains(t, ph.Lines[1], "line 6")
}

func TestCheckSkipPlaceholderScan(t *testing.T) {
	path := writeDoc(t, `model_list:
  - model_name: gpt-4
    litellm_params:
      model: azure/gpt4-prod
      api_base: https://YOUR_RESOURCE_NAME.openai.azure.com/
      use_azure_ad: true
`)
	report, err := Check(CheckInput{
		ConfigPath:          path,
		Env:                 azureEnv(),
		SkipPlaceholderScan: true,
	})
	require.NoError(t, err)
	require.Equal(t, []litellm.Provider{litellm.ProviderAzure}, report.Providers)

	// provider variable checks still run with the scan disabled
	env := azureEnv()
	delete(env, "AZURE_CLIENT_ID")
	_, err = Check(CheckInput{ConfigPath: path, Env: env, SkipPlaceholderScan: true})
	var missing *MissingVariableError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "AZURE_CLIENT_ID", missing.Var)
}

func TestCheckVertexCredentials(t *testing.T) {
	vertexEnv := func() map[string]string {
		return map[string]string{
			"VERTEX_PROJECT":  "acme-ml-prod",
			"VERTEX_LOCATION": "us-central1",
		}
	}

	t.Run("unset warns", func(t *testing.T) {
		report, err := Check(CheckInput{ConfigPath: writeDoc(t, vertexDoc), Env: vertexEnv()})
		require.NoError(t, err)
		require.Len(t, report.Warnings, 1)
		require.Contains(t, report.Warnings[0], "GOOGLE_APPLICATION_CREDENTIALS")
	})

	t.Run("missing file fails", func(t *testing.T) {
		env := vertexEnv()
		env["GOOGLE_APPLICATION_CREDENTIALS"] = filepath.Join(t.TempDir(), "nope.json")
		_, err := Check(CheckInput{ConfigPath: writeDoc(t, vertexDoc), Env: env})
		var missing *MissingFileError
		require.ErrorAs(t, err, &missing)
		require.Equal(t, env["GOOGLE_APPLICATION_CREDENTIALS"], missing.Path)
	})

	t.Run("placeholder path fails", func(t *testing.T) {
		env := vertexEnv()
		env["GOOGLE_APPLICATION_CREDENTIALS"] = "/path/to/service-account.json"
		_, err := Check(CheckInput{ConfigPath: writeDoc(t, vertexDoc), Env: env})
		var ph *PlaceholderValueError
		require.ErrorAs(t, err, &ph)
		require.Equal(t, "GOOGLE_APPLICATION_CREDENTIALS", ph.Var)
	})

	t.Run("real file passes", func(t *testing.T) {
		creds := filepath.Join(t.TempDir(), "sa.json")
		require.NoError(t, os.WriteFile(creds, []byte("{}"), 0o600))
		env := vertexEnv()
		env["GOOGLE_APPLICATION_CREDENTIALS"] = creds
		report, err := Check(CheckInput{ConfigPath: writeDoc(t, vertexDoc), Env: env})
		require.NoError(t, err)
		require.Empty(t, report.Warnings)
	})
}

func TestCheckCABundleWarning(t *testing.T) {
	path := writeDoc(t, `model_list:
  - model_name: gpt-4
    litellm_params:
      model: azure/gpt4-prod
      api_base: https://acme-ml.openai.azure.com/
      ssl_verify: /path/to/ca-bundle.pem
      use_azure_ad: true
`)
	env := azureEnv()
	env["SSL_CERT_FILE"] = "/etc/ssl/certs/corp-ca.pem"
	report, err := Check(CheckInput{
		ConfigPath:          path,
		Env:                 env,
		SkipPlaceholderScan: true,
	})
	require.NoError(t, err)
	require.Len(t, report.Warnings, 1)
	require.Contains(t, report.Warnings[0], "ssl_verify")
}

func TestLoadDocument(t *testing.T) {
	doc, err := LoadDocument(writeDoc(t, dashScopeDoc))
	require.NoError(t, err)
	require.Equal(t, []string{"qwen-max"}, doc.Aliases())

	_, err = LoadDocument(filepath.Join(t.TempDir(), "config.yaml"))
	var missing *MissingFileError
	require.ErrorAs(t, err, &missing)
}

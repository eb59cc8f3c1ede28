package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/raywall/guest-user-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
type User {
  userId: ID!
  name: String
}

type Query {
  listUsers: [User]
}
`

// newAssetDir monta uma cópia mínima dos assets da stack em um diretório temporário.
func newAssetDir(t *testing.T) *config.StackConfig {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{}
	files[config.DefaultSchemaPath] = testSchema
	files[config.DefaultRequestTemplate] = `{"version": "2017-02-28", "operation": "Scan"}`
	files[config.DefaultResponseTemplate] = `$util.toJson($ctx.result.items)`
	files[filepath.Join(config.DefaultCode, "index.js")] = "exports.main = async () => {}"
	files[filepath.Join(config.GoCode, config.GoHandler)] = "binary"

	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	cfg := config.Default()
	cfg.Stack.BaseDir = dir
	return cfg
}

func TestAnalyze_Valid(t *testing.T) {
	cfg := newAssetDir(t)

	report, err := Analyze(cfg)
	require.NoError(t, err)
	assert.True(t, report.Valid, report.Errors)
	assert.Empty(t, report.Errors)
	// nodejs16.x é aceito, mas gera aviso
	assert.NotEmpty(t, report.Warnings)
}

func TestAnalyze_GoRuntime(t *testing.T) {
	cfg := newAssetDir(t)
	cfg.Function.Runtime = config.RuntimeGo
	cfg.ApplyRuntimeProfile()

	report, err := Analyze(cfg)
	require.NoError(t, err)
	assert.True(t, report.Valid, report.Errors)

	require.NoError(t, os.Remove(filepath.Join(cfg.Stack.BaseDir, config.GoCode, config.GoHandler)))
	report, err = Analyze(cfg)
	require.NoError(t, err)
	assert.False(t, report.Valid)
}

func TestAnalyze_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, cfg *config.StackConfig)
	}{
		{
			name: "Campo ausente no schema",
			mutate: func(t *testing.T, cfg *config.StackConfig) {
				cfg.API.Resolver.FieldName = "getUser"
			},
		},
		{
			name: "Schema inválido",
			mutate: func(t *testing.T, cfg *config.StackConfig) {
				require.NoError(t, os.WriteFile(cfg.Path(cfg.API.Schema), []byte("type {"), 0o644))
			},
		},
		{
			name: "Template vazio",
			mutate: func(t *testing.T, cfg *config.StackConfig) {
				require.NoError(t, os.WriteFile(cfg.Path(cfg.API.Resolver.ResponseTemplate), []byte("  \n"), 0o644))
			},
		},
		{
			name: "Template ausente",
			mutate: func(t *testing.T, cfg *config.StackConfig) {
				cfg.API.Resolver.RequestTemplate = "missing.vtl"
			},
		},
		{
			name: "Pacote ausente",
			mutate: func(t *testing.T, cfg *config.StackConfig) {
				cfg.Function.Code = "functions/none"
			},
		},
		{
			name: "Guardrail reprovada",
			mutate: func(t *testing.T, cfg *config.StackConfig) {
				cfg.Guardrails = []config.GuardrailRule{{ID: "rate", Expr: "schedule.rate_minutes >= 15"}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newAssetDir(t)
			tt.mutate(t, cfg)

			report, err := Analyze(cfg)
			require.NoError(t, err)
			assert.False(t, report.Valid)
			assert.NotEmpty(t, report.Errors)
		})
	}
}

func TestAnalyze_ExtendedQueryType(t *testing.T) {
	cfg := newAssetDir(t)
	schema := testSchema + "\nextend type Query {\n  countUsers: Int\n}\n"
	require.NoError(t, os.WriteFile(cfg.Path(cfg.API.Schema), []byte(schema), 0o644))
	cfg.API.Resolver.FieldName = "countUsers"

	report, err := Analyze(cfg)
	require.NoError(t, err)
	assert.True(t, report.Valid, report.Errors)
}

func TestAnalyze_IAMWarning(t *testing.T) {
	cfg := newAssetDir(t)
	cfg.API.Authorization = config.AuthConf{Type: config.AuthIAM}

	report, err := Analyze(cfg)
	require.NoError(t, err)
	assert.True(t, report.Valid)
	assert.Contains(t, report.Warnings[0], "GraphQLAPIKey")
}

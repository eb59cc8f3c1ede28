package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProject cria um diretório com assets e um stack.yaml apontando para ele.
func writeProject(t *testing.T, withTemplates bool) string {
	t.Helper()
	dir := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write("assets/schema.graphql", "type User { userId: ID! }\ntype Query { listUsers: [User] }\n")
	if withTemplates {
		write("assets/mappingTemplates/Query.listUsers.req.vtl", `{"version": "2017-02-28", "operation": "Scan"}`)
		write("assets/mappingTemplates/Query.listUsers.res.vtl", `$util.toJson($ctx.result.items)`)
	}
	write("assets/functions/addUserLambda/index.js", "exports.main = async () => {}")

	cfgPath := filepath.Join(dir, "stack.yaml")
	write("stack.yaml", "version: \"1.0\"\nstack:\n  id: GuestUserBackendStack\n  base_dir: "+dir+"\n")
	return cfgPath
}

func TestRun_Validate(t *testing.T) {
	t.Run("Válida", func(t *testing.T) {
		var out bytes.Buffer
		code := run(context.Background(), []string{"validate", "-file", writeProject(t, true)}, &out)
		assert.Equal(t, 0, code, out.String())
		assert.Contains(t, out.String(), "Configuração Válida")
	})

	t.Run("Templates ausentes", func(t *testing.T) {
		var out bytes.Buffer
		code := run(context.Background(), []string{"validate", "-file", writeProject(t, false)}, &out)
		assert.Equal(t, 1, code)
		assert.Contains(t, out.String(), "erros lógicos")
	})

	t.Run("JSON", func(t *testing.T) {
		t.Setenv("OUTPUT_FORMAT", "json")
		var out bytes.Buffer
		code := run(context.Background(), []string{"validate", "-file", writeProject(t, true)}, &out)
		require.Equal(t, 0, code, out.String())

		var report map[string]interface{}
		require.NoError(t, json.Unmarshal(out.Bytes(), &report))
		assert.Equal(t, true, report["valid"])
	})

	t.Run("Arquivo inexistente", func(t *testing.T) {
		var out bytes.Buffer
		code := run(context.Background(), []string{"validate", "-file", filepath.Join(t.TempDir(), "none.yaml")}, &out)
		assert.Equal(t, 1, code)
		assert.Contains(t, out.String(), "Erro de Carregamento")
	})
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "Sem comando", args: nil},
		{name: "Comando desconhecido", args: []string{"deploy"}},
		{name: "Sem -file", args: []string{"validate"}},
		{name: "Flag inválida", args: []string{"validate", "-x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, 1, run(context.Background(), tt.args, &out))
		})
	}
}

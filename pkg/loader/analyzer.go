package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	"github.com/raywall/guest-user-backend/pkg/config"
	"github.com/raywall/guest-user-backend/pkg/rules"
)

// ValidationReport contém o resultado detalhado da análise.
type ValidationReport struct {
	Valid      bool                    `json:"valid"`
	Errors     []string                `json:"errors,omitempty"`
	Warnings   []string                `json:"warnings,omitempty"`
	Guardrails []rules.GuardrailResult `json:"guardrails,omitempty"`
}

func (r *ValidationReport) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Analyze verifica o que o synth do CDK só descobriria tarde: assets
// ausentes, templates vazios, schema sem o campo do resolver e guardrails.
func Analyze(cfg *config.StackConfig) (*ValidationReport, error) {
	report := &ValidationReport{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}

	// 1. Schema GraphQL
	schemaPath := cfg.Path(cfg.API.Schema)
	doc, err := parseSchema(schemaPath)
	if err != nil {
		report.fail("API.Schema: %v", err)
	} else if !hasField(doc, cfg.API.Resolver.TypeName, cfg.API.Resolver.FieldName) {
		report.fail("API.Schema: campo %s.%s não declarado em %s",
			cfg.API.Resolver.TypeName, cfg.API.Resolver.FieldName, schemaPath)
	}

	// 2. Mapping templates (anexados verbatim, só precisam existir e ter conteúdo)
	for name, rel := range map[string]string{
		"request_template":  cfg.API.Resolver.RequestTemplate,
		"response_template": cfg.API.Resolver.ResponseTemplate,
	} {
		content, err := os.ReadFile(cfg.Path(rel))
		if err != nil {
			report.fail("API.Resolver.%s: %v", name, err)
			continue
		}
		if strings.TrimSpace(string(content)) == "" {
			report.fail("API.Resolver.%s: template vazio (%s)", name, rel)
		}
	}

	// 3. Pacote da função
	codeDir := cfg.Path(cfg.Function.Code)
	info, err := os.Stat(codeDir)
	switch {
	case err != nil:
		report.fail("Function.Code: %v", err)
	case !info.IsDir():
		report.fail("Function.Code: %s não é um diretório", codeDir)
	case cfg.Function.IsGo():
		if _, err := os.Stat(filepath.Join(codeDir, config.GoHandler)); err != nil {
			report.fail("Function.Code: binário '%s' ausente em %s (rode make build-adduser)", config.GoHandler, codeDir)
		}
	default:
		module := strings.SplitN(cfg.Function.Handler, ".", 2)[0]
		matches, _ := filepath.Glob(filepath.Join(codeDir, module+".*"))
		if len(matches) == 0 {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Function.Handler: nenhum arquivo '%s.*' em %s", module, codeDir))
		}
	}

	// 4. Avisos de configuração
	if cfg.API.Authorization.Type == config.AuthIAM {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("API.Authorization: IAM não gera chave, o output %s será vazio", cfg.Outputs.APIKey))
	}
	if cfg.Function.Runtime == "nodejs16.x" {
		report.Warnings = append(report.Warnings, "Function.Runtime: nodejs16.x está deprecado na AWS Lambda")
	}

	// 5. Guardrails CEL
	if len(cfg.Guardrails) > 0 {
		rm, err := rules.NewRuleManager()
		if err != nil {
			return nil, fmt.Errorf("falha interna ao iniciar analisador de regras: %w", err)
		}
		results, err := rm.CheckGuardrails(cfg)
		if err != nil {
			return nil, err
		}
		report.Guardrails = results
		for _, r := range results {
			if !r.Passed {
				report.fail("Guardrail[%s]: %s", r.ID, r.Message)
			}
		}
	}

	return report, nil
}

func parseSchema(path string) (*ast.Document, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := parser.Parse(parser.ParseParams{
		Source: source.NewSource(&source.Source{Body: body, Name: filepath.Base(path)}),
	})
	if err != nil {
		return nil, fmt.Errorf("schema inválido: %w", err)
	}
	return doc, nil
}

// hasField procura o campo em "type X" e em "extend type X".
func hasField(doc *ast.Document, typeName, fieldName string) bool {
	for _, def := range doc.Definitions {
		var obj *ast.ObjectDefinition
		switch d := def.(type) {
		case *ast.ObjectDefinition:
			obj = d
		case *ast.TypeExtensionDefinition:
			obj = d.Definition
		}
		if obj == nil || obj.Name == nil || obj.Name.Value != typeName {
			continue
		}
		for _, f := range obj.Fields {
			if f.Name != nil && f.Name.Value == fieldName {
				return true
			}
		}
	}
	return false
}

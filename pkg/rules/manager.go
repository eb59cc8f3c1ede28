package rules

import (
	"fmt"

	"github.com/google/cel-go/cel"
)

// Variáveis expostas às expressões, uma por seção do YAML da stack.
var sections = []string{"version", "stack", "table", "api", "function", "schedule", "outputs", "logging"}

// RuleManager gerencia a compilação e avaliação de expressões CEL.
type RuleManager struct {
	env *cel.Env
}

// NewRuleManager inicializa o ambiente CEL com as seções da configuração.
func NewRuleManager() (*RuleManager, error) {
	opts := []cel.EnvOption{cel.StdLib()}
	for _, name := range sections {
		opts = append(opts, cel.Variable(name, cel.DynType))
	}

	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("erro fatal CEL init: %w", err)
	}

	return &RuleManager{env: env}, nil
}

// EvaluateBool processa regras de validação (deve retornar true/false).
func (rm *RuleManager) EvaluateBool(expression string, ctx map[string]interface{}) (bool, error) {
	if expression == "" {
		return true, nil // Expressão vazia = aprova
	}

	prg, err := rm.CompileProgram(expression)
	if err != nil {
		return false, err
	}

	out, _, err := prg.Eval(ctx)
	if err != nil {
		return false, fmt.Errorf("erro execução CEL: %w", err)
	}

	if val, ok := out.Value().(bool); ok {
		return val, nil
	}
	return false, fmt.Errorf("resultado não é booleano")
}

// CompileProgram expõe a compilação do CEL.
func (rm *RuleManager) CompileProgram(expr string) (cel.Program, error) {
	ast, issues := rm.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("erro de compilação CEL '%s': %w", expr, issues.Err())
	}
	prg, err := rm.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar programa CEL: %w", err)
	}
	return prg, nil
}

package rules

import (
	"fmt"

	"github.com/raywall/guest-user-backend/pkg/config"
	"gopkg.in/yaml.v3"
)

// GuardrailResult contém o resultado de uma guardrail.
type GuardrailResult struct {
	ID      string `json:"id"`
	Passed  bool   `json:"passed"`
	Message string `json:"message,omitempty"`
}

// Activation converte a configuração no mapa usado pelas expressões, com as
// mesmas chaves do YAML (ex: schedule.rate_minutes).
func Activation(cfg *config.StackConfig) (map[string]interface{}, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("falha ao serializar configuração: %w", err)
	}

	var act map[string]interface{}
	if err := yaml.Unmarshal(raw, &act); err != nil {
		return nil, fmt.Errorf("falha ao converter configuração: %w", err)
	}
	delete(act, "guardrails")
	return act, nil
}

// CheckGuardrails avalia todas as guardrails declaradas na configuração.
// Erros de compilação ou execução viram resultados reprovados.
func (rm *RuleManager) CheckGuardrails(cfg *config.StackConfig) ([]GuardrailResult, error) {
	act, err := Activation(cfg)
	if err != nil {
		return nil, err
	}

	results := make([]GuardrailResult, 0, len(cfg.Guardrails))
	for _, g := range cfg.Guardrails {
		res := GuardrailResult{ID: g.ID}

		ok, evalErr := rm.EvaluateBool(g.Expr, act)
		switch {
		case evalErr != nil:
			res.Message = evalErr.Error()
		case !ok:
			res.Message = g.Message
			if res.Message == "" {
				res.Message = fmt.Sprintf("expressão retornou false: %s", g.Expr)
			}
		default:
			res.Passed = true
		}
		results = append(results, res)
	}
	return results, nil
}

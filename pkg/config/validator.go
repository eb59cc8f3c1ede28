package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas da stack.
func (cv *ConfigValidator) Validate(cfg *StackConfig) error {
	if err := cv.ValidateStruct(cfg); err != nil {
		return err
	}

	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

// ValidateStruct aplica apenas as tags "validate" (writer, preview).
func (cv *ConfigValidator) ValidateStruct(v interface{}) error {
	if err := cv.validate.Struct(v); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}
	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *StackConfig) error {
	// 1. Chave de API: validade entre 1 e 365 dias (limite do AppSync)
	if cfg.API.Authorization.Type == AuthAPIKey {
		days := cfg.API.Authorization.ExpiresDays
		if days < 1 || days > 365 {
			return fmt.Errorf("expires_days deve estar entre 1 e 365, recebido %d", days)
		}
	}

	// 2. Runtime da função
	rt := cfg.Function.Runtime
	if rt != RuntimeGo && !strings.HasPrefix(rt, "nodejs") && !strings.HasPrefix(rt, "python") {
		return fmt.Errorf("runtime desconhecido: '%s'. Use nodejs*, python* ou go", rt)
	}

	// 3. Timeout da função em segundos inteiros, até o limite do Lambda
	if _, err := cfg.Function.TimeoutSeconds(); err != nil {
		return err
	}

	// 4. O resolver precisa apontar para um tipo raiz
	switch cfg.API.Resolver.TypeName {
	case "Query", "Mutation", "Subscription":
	default:
		return fmt.Errorf("type_name do resolver deve ser Query, Mutation ou Subscription, recebido '%s'", cfg.API.Resolver.TypeName)
	}

	// 5. IDs de guardrail únicos
	seen := make(map[string]bool)
	for _, g := range cfg.Guardrails {
		if seen[g.ID] {
			return fmt.Errorf("guardrail ID duplicado detectado: '%s'", g.ID)
		}
		seen[g.ID] = true
	}

	// 6. Outputs com nomes distintos
	if cfg.Outputs.APIID == cfg.Outputs.APIKey {
		return fmt.Errorf("outputs precisam de nomes distintos: '%s'", cfg.Outputs.APIID)
	}

	return nil
}

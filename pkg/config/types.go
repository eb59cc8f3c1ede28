package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// MaxFunctionTimeout é o limite de execução de uma função Lambda.
const MaxFunctionTimeout = 900 * time.Second

// StackConfig representa a estrutura raiz do arquivo YAML da stack.
// Campos ausentes no YAML mantêm os valores de Default().
type StackConfig struct {
	Version    string          `yaml:"version" validate:"required"`
	Stack      StackDetails    `yaml:"stack" validate:"required"`
	Table      TableConf       `yaml:"table"`
	API        APIConf         `yaml:"api"`
	Function   FunctionConf    `yaml:"function"`
	Schedule   ScheduleConf    `yaml:"schedule"`
	Outputs    OutputsConf     `yaml:"outputs"`
	Logging    LoggingConf     `yaml:"logging"`
	Guardrails []GuardrailRule `yaml:"guardrails" validate:"dive"`
}

// StackDetails contém a identidade da stack e o ambiente de deploy.
type StackDetails struct {
	ID          string            `yaml:"id" env:"STACK_ID" validate:"required"`
	Account     string            `yaml:"account" env:"GUEST_STACK_ACCOUNT"`
	Region      string            `yaml:"region" env:"GUEST_STACK_REGION"`
	Description string            `yaml:"description"`
	BaseDir     string            `yaml:"base_dir" env:"GUEST_BASE_DIR" validate:"required"`
	Tags        map[string]string `yaml:"tags"`
}

type TableConf struct {
	ID           string `yaml:"id" validate:"required"`
	PartitionKey string `yaml:"partition_key" validate:"required"`
}

type APIConf struct {
	ID            string       `yaml:"id" validate:"required"`
	Name          string       `yaml:"name" validate:"required"`
	Schema        string       `yaml:"schema" validate:"required"`
	Authorization AuthConf     `yaml:"authorization"`
	FieldLogLevel string       `yaml:"field_log_level" validate:"oneof=NONE ERROR INFO DEBUG ALL"`
	XRay          bool         `yaml:"xray"`
	Resolver      ResolverConf `yaml:"resolver"`
}

// AuthConf descreve o modo de autorização padrão da API.
type AuthConf struct {
	Type        string `yaml:"type" validate:"oneof=API_KEY IAM"`
	KeyName     string `yaml:"key_name" validate:"required_if=Type API_KEY"`
	Description string `yaml:"description"`
	ExpiresDays int    `yaml:"expires_days" validate:"required_if=Type API_KEY,gte=0"`
}

type ResolverConf struct {
	ID               string `yaml:"id" validate:"required"`
	DataSource       string `yaml:"data_source" validate:"required"`
	TypeName         string `yaml:"type_name" validate:"required"`
	FieldName        string `yaml:"field_name" validate:"required"`
	RequestTemplate  string `yaml:"request_template" validate:"required"`
	ResponseTemplate string `yaml:"response_template" validate:"required"`
}

// FunctionConf descreve a função agendada que grava na tabela.
type FunctionConf struct {
	ID          string `yaml:"id" validate:"required"`
	Runtime     string `yaml:"runtime" env:"GUEST_FUNCTION_RUNTIME" validate:"required"`
	Handler     string `yaml:"handler" validate:"required"`
	Code        string `yaml:"code" validate:"required"`
	TableEnvVar string `yaml:"table_env_var" validate:"required"`
	MemorySize  int    `yaml:"memory_size" validate:"omitempty,gte=128,lte=10240"`
	Timeout     string `yaml:"timeout"`
}

type ScheduleConf struct {
	RuleID      string `yaml:"rule_id" validate:"required"`
	RateMinutes int    `yaml:"rate_minutes" validate:"gte=1"`
}

type OutputsConf struct {
	APIID  string `yaml:"api_id" validate:"required"`
	APIKey string `yaml:"api_key" validate:"required"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"LOG_ENABLED"`
	Level   string `yaml:"level" env:"LOG_LEVEL" envDefault:"info" validate:"omitempty,oneof=debug info warn error"`
	Format  string `yaml:"format" env:"LOG_FORMAT" envDefault:"json" validate:"omitempty,oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace" env:"DD_NAMESPACE" envDefault:"guest."`
}

// GuardrailRule é uma expressão CEL avaliada sobre a configuração final.
type GuardrailRule struct {
	ID      string `yaml:"id" validate:"required"`
	Expr    string `yaml:"expr" validate:"required"`
	Message string `yaml:"message"`
}

// WriterConfig é a configuração da função agendada (somente variáveis de ambiente).
type WriterConfig struct {
	TableName string        `env:"TABLENAME" validate:"required"`
	Region    string        `env:"AWS_REGION"`
	Endpoint  string        `env:"DYNAMODB_ENDPOINT"`
	Timeout   time.Duration `env:"WRITER_TIMEOUT" envDefault:"5s"`
	Logging   LoggingConf
	Metrics   MetricsConf
}

// PreviewConfig é a configuração do servidor local de preview da API.
type PreviewConfig struct {
	Port      int           `env:"PREVIEW_PORT" envDefault:"8080" validate:"gt=0,lt=65536"`
	Route     string        `env:"PREVIEW_ROUTE" envDefault:"/graphql" validate:"startswith=/"`
	TableName string        `env:"TABLENAME" validate:"required"`
	APIKey    string        `env:"PREVIEW_API_KEY" validate:"required"`
	Region    string        `env:"AWS_REGION"`
	Endpoint  string        `env:"DYNAMODB_ENDPOINT"`
	Timeout   time.Duration `env:"PREVIEW_TIMEOUT" envDefault:"10s"`
	Logging   LoggingConf
}

// Path resolve um caminho de asset relativo ao BaseDir da stack.
func (c *StackConfig) Path(rel string) string {
	if filepath.IsAbs(rel) || c.Stack.BaseDir == "" {
		return rel
	}
	return filepath.Join(c.Stack.BaseDir, rel)
}

// KeyExpiry retorna a validade da chave de API.
func (a AuthConf) KeyExpiry() time.Duration {
	return time.Duration(a.ExpiresDays) * 24 * time.Hour
}

// TimeoutSeconds converte o timeout da função em segundos inteiros. Zero
// significa que o timeout não foi definido.
func (f FunctionConf) TimeoutSeconds() (int, error) {
	if f.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout da função inválido: %w", err)
	}
	if d%time.Second != 0 {
		return 0, fmt.Errorf("timeout da função precisa ser em segundos inteiros, recebido '%s'", f.Timeout)
	}
	if d < time.Second || d > MaxFunctionTimeout {
		return 0, fmt.Errorf("timeout da função deve estar entre 1s e %s, recebido '%s'", MaxFunctionTimeout, f.Timeout)
	}
	return int(d / time.Second), nil
}

// IsGo indica se a função usa o pacote Go (provided.al2023).
func (f FunctionConf) IsGo() bool {
	return f.Runtime == RuntimeGo
}

// NewWriterConfig carrega e valida a configuração da função agendada.
func NewWriterConfig() (*WriterConfig, error) {
	cfg := &WriterConfig{Logging: LoggingConf{Enabled: true}}
	if err := LoadEnv(cfg); err != nil {
		return nil, err
	}
	if err := NewValidator().ValidateStruct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

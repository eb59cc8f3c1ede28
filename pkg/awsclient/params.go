package awsclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Interfaces para abstrair o SDK da AWS (Permite Mocking)
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Parameter busca um parâmetro do SSM Parameter Store (com decrypt).
func Parameter(ctx context.Context, region, path string) (string, error) {
	cfg, err := GetAWSConfig(ctx, region)
	if err != nil {
		return "", err
	}
	return GetParameter(ctx, ssm.NewFromConfig(cfg), path)
}

// GetParameter contém a lógica pura, testável via Mock.
func GetParameter(ctx context.Context, client SSMClient, path string) (string, error) {
	decrypt := true
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &path,
		WithDecryption: &decrypt,
	})
	if err != nil {
		return "", fmt.Errorf("erro no SSM GetParameter: %w", err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parâmetro SSM '%s' sem valor", path)
	}
	return *out.Parameter.Value, nil
}

// Secret busca um segredo do Secrets Manager.
//
// O id aceita o formato "nome#campo": quando o segredo é um JSON, apenas o
// campo indicado é retornado.
func Secret(ctx context.Context, region, id string) (string, error) {
	cfg, err := GetAWSConfig(ctx, region)
	if err != nil {
		return "", err
	}
	return GetSecret(ctx, secretsmanager.NewFromConfig(cfg), id)
}

// GetSecret contém a lógica pura, testável via Mock.
func GetSecret(ctx context.Context, client SecretsClient, id string) (string, error) {
	secretID, field := splitSecretField(id)

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &secretID,
	})
	if err != nil {
		return "", fmt.Errorf("erro no SecretsManager: %w", err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("segredo '%s' não é texto", secretID)
	}

	val := *out.SecretString
	if field == "" {
		return val, nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return "", fmt.Errorf("segredo '%s' não é JSON: %w", secretID, err)
	}
	v, ok := data[field]
	if !ok {
		return "", fmt.Errorf("campo '%s' não encontrado no segredo '%s'", field, secretID)
	}
	return fmt.Sprintf("%v", v), nil
}

func splitSecretField(id string) (string, string) {
	for i := len(id) - 1; i >= 0; i-- {
		if id[i] == '#' {
			return id[:i], id[i+1:]
		}
	}
	return id, ""
}

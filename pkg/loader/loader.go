// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
// Package loader carrega a configuração da stack a partir de arquivos
// locais, S3, DynamoDB ou SSM e executa a análise estática dos assets.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/raywall/guest-user-backend/pkg/awsclient"
	"github.com/raywall/guest-user-backend/pkg/config"
	"github.com/raywall/guest-user-backend/pkg/config/injector"
	"gopkg.in/yaml.v3"
)

// --- Interfaces para Mocking ---

type S3Downloader interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type DynamoGetter interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Load é o atalho usado pelo app CDK e pelo toolkit.
func Load(ctx context.Context, source string) (*config.StackConfig, error) {
	return NewUniversalLoader().Load(ctx, source)
}

// UniversalLoader suporta múltiplas fontes de configuração (Local, S3, DynamoDB, SSM).
type UniversalLoader struct {
	validator *config.ConfigValidator
	injector  *injector.Injector
}

func NewUniversalLoader() *UniversalLoader {
	return &UniversalLoader{
		validator: config.NewValidator(),
		injector:  injector.New(),
	}
}

// WithInjector troca o injector (usado nos testes para não tocar na AWS).
func (ul *UniversalLoader) WithInjector(inj *injector.Injector) *UniversalLoader {
	ul.injector = inj
	return ul
}

// Load detecta o esquema da fonte e carrega a configuração. Uma fonte
// vazia devolve os valores padrão da stack.
func (ul *UniversalLoader) Load(ctx context.Context, source string) (*config.StackConfig, error) {
	var rawData []byte
	var err error

	switch {
	case source == "":
		rawData = nil

	case strings.HasPrefix(source, "s3://"):
		awsCfg, cfgErr := awsclient.GetAWSConfig(ctx, "")
		if cfgErr != nil {
			return nil, cfgErr
		}
		rawData, err = ul.loadFromS3Internal(ctx, s3.NewFromConfig(awsCfg), source)

	case strings.HasPrefix(source, "dynamodb://"):
		awsCfg, cfgErr := awsclient.GetAWSConfig(ctx, "")
		if cfgErr != nil {
			return nil, cfgErr
		}
		rawData, err = ul.loadFromDynamoDBInternal(ctx, dynamodb.NewFromConfig(awsCfg), source)

	case strings.HasPrefix(source, "ssm://"):
		awsCfg, cfgErr := awsclient.GetAWSConfig(ctx, "")
		if cfgErr != nil {
			return nil, cfgErr
		}
		rawData, err = ul.loadFromSSMInternal(ctx, ssm.NewFromConfig(awsCfg), source)

	default:
		rawData, err = ul.loadFromFile(source)
	}

	if err != nil {
		return nil, fmt.Errorf("falha leitura config (%s): %w", source, err)
	}

	return ul.parseAndValidate(ctx, rawData)
}

// --- Estratégias de carregamento (métodos internos testáveis) ---

func (ul *UniversalLoader) loadFromFile(path string) ([]byte, error) {
	// Suporta tanto "file://stack.yaml" quanto apenas "stack.yaml"
	cleanPath := strings.TrimPrefix(path, "file://")
	return os.ReadFile(cleanPath)
}

func (ul *UniversalLoader) loadFromS3Internal(ctx context.Context, client S3Downloader, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL S3 inválida: %w", err)
	}
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (ul *UniversalLoader) loadFromDynamoDBInternal(ctx context.Context, client DynamoGetter, uri string) ([]byte, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("URL DynamoDB inválida: %w", err)
	}

	tableName := u.Host
	pkValue := strings.TrimPrefix(u.Path, "/")

	// Query Params opcionais: dynamodb://tabela/chave?col=dado&pk=StackId
	colName := u.Query().Get("col")
	if colName == "" {
		colName = "config"
	}

	pkName := u.Query().Get("pk")
	if pkName == "" {
		pkName = "id"
	}

	out, err := client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key: map[string]types.AttributeValue{
			pkName: &types.AttributeValueMemberS{Value: pkValue},
		},
	})
	if err != nil {
		return nil, err
	}

	if out.Item == nil {
		return nil, fmt.Errorf("item não encontrado no DynamoDB")
	}

	var itemMap map[string]interface{}
	if err := attributevalue.UnmarshalMap(out.Item, &itemMap); err != nil {
		return nil, err
	}

	content, ok := itemMap[colName].(string)
	if !ok {
		return nil, fmt.Errorf("coluna '%s' inválida ou vazia no DynamoDB", colName)
	}

	return []byte(content), nil
}

// loadFromSSMInternal lê o YAML armazenado em um parâmetro: ssm:///guest/stack
func (ul *UniversalLoader) loadFromSSMInternal(ctx context.Context, client awsclient.SSMClient, uri string) ([]byte, error) {
	name := strings.TrimPrefix(uri, "ssm://")
	if name == "" {
		return nil, fmt.Errorf("URL SSM sem nome de parâmetro")
	}

	val, err := awsclient.GetParameter(ctx, client, name)
	if err != nil {
		return nil, err
	}
	return []byte(val), nil
}

// parseAndValidate aplica, em ordem: defaults, YAML, env, interpolação,
// perfil de runtime e validação.
func (ul *UniversalLoader) parseAndValidate(ctx context.Context, data []byte) (*config.StackConfig, error) {
	cfg := config.Default()

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("YAML malformado: %w", err)
		}
	}

	if err := config.LoadEnv(cfg); err != nil {
		return nil, fmt.Errorf("falha nas variáveis de ambiente: %w", err)
	}

	if ul.injector != nil {
		if err := ul.injector.Inject(ctx, cfg); err != nil {
			return nil, fmt.Errorf("falha na injeção de variáveis: %w", err)
		}
	}

	cfg.ApplyRuntimeProfile()

	if ul.validator != nil {
		if err := ul.validator.Validate(cfg); err != nil {
			return nil, fmt.Errorf("validação da configuração falhou: %w", err)
		}
	}

	return cfg, nil
}

// Package awsclient centraliza a criação dos clientes AWS usados pela
// stack de convidados (DynamoDB, S3, SSM e Secrets Manager).
package awsclient

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

var (
	awsCfg  aws.Config
	awsOnce sync.Once
	awsErr  error
)

// GetAWSConfig carrega a configuração da AWS (env vars, profile, IAM role) de forma lazy-singleton.
func GetAWSConfig(ctx context.Context, region string) (aws.Config, error) {
	awsOnce.Do(func() {
		opts := []func(*config.LoadOptions) error{}
		if region != "" {
			opts = append(opts, config.WithRegion(region))
		}
		awsCfg, awsErr = config.LoadDefaultConfig(ctx, opts...)
	})
	return awsCfg, awsErr
}

// NewDynamoDB cria um cliente DynamoDB. Um endpoint não vazio aponta para
// o DynamoDB Local usado no preview e nos testes de integração.
func NewDynamoDB(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := GetAWSConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

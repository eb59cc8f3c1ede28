package userstore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/raywall/guest-user-backend/pkg/config"
)

type dynamoStore[T any] struct {
	client DynamoDBClient
	cfg    TableConfig
}

// New cria um store. Campos vazios da TableConfig são lidos do ambiente.
func New[T any](client DynamoDBClient, cfg TableConfig) (Store[T], error) {
	if cfg.TableName == "" || cfg.HashKey == "" {
		if err := config.LoadEnv(&cfg); err != nil {
			return nil, err
		}
	}
	if cfg.TableName == "" {
		return nil, fmt.Errorf("userstore: table name is required")
	}

	return &dynamoStore[T]{
		client: client,
		cfg:    cfg,
	}, nil
}

func (s *dynamoStore[T]) Create(ctx context.Context, item T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("userstore: marshal failed: %w", err)
	}
	if _, ok := av[s.cfg.HashKey]; !ok {
		return fmt.Errorf("userstore: item has no %q attribute", s.cfg.HashKey)
	}

	cond := expression.AttributeNotExists(expression.Name(s.cfg.HashKey))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("userstore: build condition failed: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(s.cfg.TableName),
		Item:                     av,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrConditionFailed
		}
		return fmt.Errorf("userstore: put failed: %w", err)
	}
	return nil
}

func (s *dynamoStore[T]) ScanPage(ctx context.Context, limit int32, token string) ([]T, string, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.cfg.TableName),
	}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}
	if token != "" {
		startKey, err := decodeToken(token)
		if err != nil {
			return nil, "", err
		}
		input.ExclusiveStartKey = startKey
	}

	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, "", fmt.Errorf("userstore: scan failed: %w", err)
	}

	items := make([]T, 0, len(out.Items))
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, "", fmt.Errorf("userstore: unmarshal failed: %w", err)
	}
	if items == nil {
		items = []T{}
	}

	next, err := encodeToken(out.LastEvaluatedKey)
	if err != nil {
		return nil, "", err
	}
	return items, next, nil
}

// A chave de continuação é um map de strings (a tabela só tem chave S).
func encodeToken(lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}
	var plain map[string]string
	if err := attributevalue.UnmarshalMap(lastKey, &plain); err != nil {
		return "", fmt.Errorf("userstore: encode token failed: %w", err)
	}
	b, err := json.Marshal(plain)
	if err != nil {
		return "", fmt.Errorf("userstore: encode token failed: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func decodeToken(token string) (map[string]types.AttributeValue, error) {
	b, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("userstore: invalid token: %w", err)
	}
	var plain map[string]string
	if err := json.Unmarshal(b, &plain); err != nil {
		return nil, fmt.Errorf("userstore: invalid token: %w", err)
	}
	key, err := attributevalue.MarshalMap(plain)
	if err != nil {
		return nil, fmt.Errorf("userstore: invalid token: %w", err)
	}
	return key, nil
}

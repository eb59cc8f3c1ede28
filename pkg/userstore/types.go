package userstore

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ErrConditionFailed – a escrita condicional foi rejeitada (chave já existe).
var ErrConditionFailed = errors.New("userstore: condition failed")

// DynamoDBClient abstrai o subconjunto do cliente DynamoDB usado pelo store.
type DynamoDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store é o acesso tipado à tabela de usuários.
type Store[T any] interface {
	// Create grava o item somente se a chave de partição ainda não existir.
	Create(ctx context.Context, item T) error
	// ScanPage lê uma página da tabela. token vazio começa do início; o
	// token devolvido é vazio quando não há mais páginas.
	ScanPage(ctx context.Context, limit int32, token string) ([]T, string, error)
}

// TableConfig — tabela e atributo de partição.
type TableConfig struct {
	TableName string `env:"TABLENAME"`
	HashKey   string `env:"USERSTORE_HASH_KEY" envDefault:"userId"`
}

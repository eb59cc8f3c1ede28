// Package stack declara a stack de usuários convidados: tabela DynamoDB,
// API AppSync com o resolver Query.listUsers, função agendada que grava na
// tabela e os outputs de identificação da API.
package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsappsync"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/raywall/guest-user-backend/pkg/config"
)

// GuestUserBackendStack expõe os recursos criados para uso em testes e
// em stacks que queiram estender a original.
type GuestUserBackendStack struct {
	awscdk.Stack

	Table    awsdynamodb.Table
	API      awsappsync.GraphqlApi
	Resolver awsappsync.Resolver
	Function awslambda.Function
	Rule     awsevents.Rule
}

// NewGuestUserBackendStack cria a stack a partir da configuração. A ordem de
// provisionamento (tabela antes do resolver e do grant) é inferida pelo CDK
// a partir das referências entre os recursos.
func NewGuestUserBackendStack(scope constructs.Construct, cfg *config.StackConfig) (*GuestUserBackendStack, error) {
	if cfg == nil {
		return nil, fmt.Errorf("stack: configuração nula")
	}

	s := awscdk.NewStack(scope, jsii.String(cfg.Stack.ID), stackProps(cfg))
	for k, v := range cfg.Stack.Tags {
		awscdk.Tags_Of(s).Add(jsii.String(k), jsii.String(v), nil)
	}

	gs := &GuestUserBackendStack{Stack: s}

	gs.Table = newUserTable(s, cfg.Table)

	api, err := newGraphqlAPI(s, cfg)
	if err != nil {
		return nil, err
	}
	gs.API = api
	gs.Resolver = newListUsersResolver(cfg, api, gs.Table)

	fn, err := newAddUserFunction(s, cfg, gs.Table)
	if err != nil {
		return nil, err
	}
	gs.Function = fn
	gs.Rule = newScheduleRule(s, cfg.Schedule, fn)

	newOutputs(s, cfg.Outputs, api)

	return gs, nil
}

func stackProps(cfg *config.StackConfig) *awscdk.StackProps {
	props := &awscdk.StackProps{}
	if cfg.Stack.Description != "" {
		props.Description = jsii.String(cfg.Stack.Description)
	}
	if cfg.Stack.Account != "" || cfg.Stack.Region != "" {
		env := &awscdk.Environment{}
		if cfg.Stack.Account != "" {
			env.Account = jsii.String(cfg.Stack.Account)
		}
		if cfg.Stack.Region != "" {
			env.Region = jsii.String(cfg.Stack.Region)
		}
		props.Env = env
	}
	return props
}

// newUserTable: chave de partição única (string), sob demanda e destruída
// junto com a stack. Sem sort key, índices ou TTL.
func newUserTable(scope constructs.Construct, conf config.TableConf) awsdynamodb.Table {
	return awsdynamodb.NewTable(scope, jsii.String(conf.ID), &awsdynamodb.TableProps{
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
		BillingMode:   awsdynamodb.BillingMode_PAY_PER_REQUEST,
		PartitionKey: &awsdynamodb.Attribute{
			Name: jsii.String(conf.PartitionKey),
			Type: awsdynamodb.AttributeType_STRING,
		},
	})
}

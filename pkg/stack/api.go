package stack

import (
	"fmt"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsappsync"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/raywall/guest-user-backend/pkg/config"
)

var fieldLogLevels = map[string]awsappsync.FieldLogLevel{
	"NONE":  awsappsync.FieldLogLevel_NONE,
	"ERROR": awsappsync.FieldLogLevel_ERROR,
	"INFO":  awsappsync.FieldLogLevel_INFO,
	"DEBUG": awsappsync.FieldLogLevel_DEBUG,
	"ALL":   awsappsync.FieldLogLevel_ALL,
}

func newGraphqlAPI(scope constructs.Construct, cfg *config.StackConfig) (awsappsync.GraphqlApi, error) {
	schemaPath := cfg.Path(cfg.API.Schema)
	if _, err := os.Stat(schemaPath); err != nil {
		return nil, fmt.Errorf("stack: schema GraphQL: %w", err)
	}

	level, ok := fieldLogLevels[cfg.API.FieldLogLevel]
	if !ok {
		return nil, fmt.Errorf("stack: field_log_level inválido: %s", cfg.API.FieldLogLevel)
	}

	return awsappsync.NewGraphqlApi(scope, jsii.String(cfg.API.ID), &awsappsync.GraphqlApiProps{
		Name:       jsii.String(cfg.API.Name),
		Definition: awsappsync.Definition_FromFile(jsii.String(schemaPath)),
		AuthorizationConfig: &awsappsync.AuthorizationConfig{
			DefaultAuthorization: authorizationMode(cfg.API.Authorization),
		},
		LogConfig: &awsappsync.LogConfig{
			FieldLogLevel: level,
		},
		XrayEnabled: jsii.Bool(cfg.API.XRay),
	}), nil
}

// authorizationMode: API_KEY expira N dias após o synth (Expiration.after).
func authorizationMode(conf config.AuthConf) *awsappsync.AuthorizationMode {
	if conf.Type == config.AuthIAM {
		return &awsappsync.AuthorizationMode{
			AuthorizationType: awsappsync.AuthorizationType_IAM,
		}
	}

	keyConfig := &awsappsync.ApiKeyConfig{
		Name:    jsii.String(conf.KeyName),
		Expires: awscdk.Expiration_After(awscdk.Duration_Hours(jsii.Number(conf.KeyExpiry().Hours()))),
	}
	if conf.Description != "" {
		keyConfig.Description = jsii.String(conf.Description)
	}

	return &awsappsync.AuthorizationMode{
		AuthorizationType: awsappsync.AuthorizationType_API_KEY,
		ApiKeyConfig:      keyConfig,
	}
}

// newListUsersResolver liga Query.listUsers à tabela por meio de um data
// source DynamoDB. Os templates VTL são anexados sem alteração.
func newListUsersResolver(cfg *config.StackConfig, api awsappsync.GraphqlApi, table awsdynamodb.Table) awsappsync.Resolver {
	rc := cfg.API.Resolver

	ds := api.AddDynamoDbDataSource(jsii.String(rc.DataSource), table, nil)

	return ds.CreateResolver(jsii.String(rc.ID), &awsappsync.BaseResolverProps{
		TypeName:                jsii.String(rc.TypeName),
		FieldName:               jsii.String(rc.FieldName),
		RequestMappingTemplate:  awsappsync.MappingTemplate_FromFile(jsii.String(cfg.Path(rc.RequestTemplate))),
		ResponseMappingTemplate: awsappsync.MappingTemplate_FromFile(jsii.String(cfg.Path(rc.ResponseTemplate))),
	})
}

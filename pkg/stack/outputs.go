package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsappsync"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/raywall/guest-user-backend/pkg/config"
)

// newOutputs publica o id da API e a chave gerada ("" quando não há chave).
func newOutputs(scope constructs.Construct, conf config.OutputsConf, api awsappsync.GraphqlApi) {
	awscdk.NewCfnOutput(scope, jsii.String(conf.APIID), &awscdk.CfnOutputProps{
		Value: api.ApiId(),
	})

	awscdk.NewCfnOutput(scope, jsii.String(conf.APIKey), &awscdk.CfnOutputProps{
		Value: apiKeyOrEmpty(api),
	})
}

func apiKeyOrEmpty(api awsappsync.GraphqlApi) *string {
	if key := api.ApiKey(); key != nil {
		return key
	}
	return jsii.String("")
}

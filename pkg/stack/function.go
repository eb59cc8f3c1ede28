package stack

import (
	"fmt"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsevents"
	"github.com/aws/aws-cdk-go/awscdk/v2/awseventstargets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/raywall/guest-user-backend/pkg/config"
)

// newAddUserFunction cria a função que grava usuários na tabela. O grant é
// somente de escrita: a função nunca lê a tabela.
func newAddUserFunction(scope constructs.Construct, cfg *config.StackConfig, table awsdynamodb.Table) (awslambda.Function, error) {
	fc := cfg.Function

	codeDir := cfg.Path(fc.Code)
	if _, err := os.Stat(codeDir); err != nil {
		return nil, fmt.Errorf("stack: pacote da função: %w", err)
	}

	props := &awslambda.FunctionProps{
		Runtime: runtimeFor(fc),
		Handler: jsii.String(fc.Handler),
		Code:    awslambda.Code_FromAsset(jsii.String(codeDir), nil),
		Environment: &map[string]*string{
			fc.TableEnvVar: table.TableName(),
		},
	}
	if fc.IsGo() {
		props.Architecture = awslambda.Architecture_ARM_64()
	}
	if fc.MemorySize > 0 {
		props.MemorySize = jsii.Number(fc.MemorySize)
	}
	secs, err := fc.TimeoutSeconds()
	if err != nil {
		return nil, fmt.Errorf("stack: %w", err)
	}
	if secs > 0 {
		props.Timeout = awscdk.Duration_Seconds(jsii.Number(secs))
	}

	fn := awslambda.NewFunction(scope, jsii.String(fc.ID), props)
	table.GrantWriteData(fn)

	return fn, nil
}

func runtimeFor(fc config.FunctionConf) awslambda.Runtime {
	if fc.IsGo() {
		return awslambda.Runtime_PROVIDED_AL2023()
	}
	return awslambda.NewRuntime(jsii.String(fc.Runtime), runtimeFamily(fc.Runtime), nil)
}

func runtimeFamily(name string) awslambda.RuntimeFamily {
	if len(name) >= 6 && name[:6] == "python" {
		return awslambda.RuntimeFamily_PYTHON
	}
	return awslambda.RuntimeFamily_NODEJS
}

// newScheduleRule dispara a função a cada N minutos, sem payload definido.
func newScheduleRule(scope constructs.Construct, conf config.ScheduleConf, fn awslambda.Function) awsevents.Rule {
	return awsevents.NewRule(scope, jsii.String(conf.RuleID), &awsevents.RuleProps{
		Schedule: awsevents.Schedule_Rate(awscdk.Duration_Minutes(jsii.Number(conf.RateMinutes))),
		Targets: &[]awsevents.IRuleTarget{
			awseventstargets.NewLambdaFunction(fn, nil),
		},
	})
}

package config

// Valores padrão da stack de usuários convidados.
const (
	DefaultVersion = "1.0"
	DefaultStackID = "GuestUserBackendStack"

	DefaultTableID      = "User Table"
	DefaultPartitionKey = "userId"

	DefaultAPIID          = "Book API"
	DefaultAPIName        = "Book API"
	DefaultSchemaPath     = "assets/schema.graphql"
	DefaultKeyName        = "Public Book Scan Token"
	DefaultKeyDescription = "public scan for books"
	DefaultKeyExpiresDays = 30

	DefaultResolverID       = "ListUsersResolver"
	DefaultDataSource       = "listUsers"
	DefaultResolverType     = "Query"
	DefaultResolverField    = "listUsers"
	DefaultRequestTemplate  = "assets/mappingTemplates/Query.listUsers.req.vtl"
	DefaultResponseTemplate = "assets/mappingTemplates/Query.listUsers.res.vtl"

	DefaultFunctionID  = "addUserFunction"
	DefaultRuntime     = "nodejs16.x"
	DefaultHandler     = "index.main"
	DefaultCode        = "assets/functions/addUserLambda"
	DefaultTableEnvVar = "TABLENAME"

	DefaultRuleID      = "addUserRule"
	DefaultRateMinutes = 5

	DefaultOutputAPIID  = "GraphQLAPIID"
	DefaultOutputAPIKey = "GraphQLAPIKey"

	AuthAPIKey = "API_KEY"
	AuthIAM    = "IAM"

	RuntimeGo   = "go"
	GoHandler   = "bootstrap"
	GoCode      = "bin/adduser"
	GoMemoryMiB = 128
)

// Default retorna a configuração completa da stack original.
func Default() *StackConfig {
	return &StackConfig{
		Version: DefaultVersion,
		Stack: StackDetails{
			ID:      DefaultStackID,
			BaseDir: ".",
		},
		Table: TableConf{
			ID:           DefaultTableID,
			PartitionKey: DefaultPartitionKey,
		},
		API: APIConf{
			ID:     DefaultAPIID,
			Name:   DefaultAPIName,
			Schema: DefaultSchemaPath,
			Authorization: AuthConf{
				Type:        AuthAPIKey,
				KeyName:     DefaultKeyName,
				Description: DefaultKeyDescription,
				ExpiresDays: DefaultKeyExpiresDays,
			},
			FieldLogLevel: "ALL",
			XRay:          true,
			Resolver: ResolverConf{
				ID:               DefaultResolverID,
				DataSource:       DefaultDataSource,
				TypeName:         DefaultResolverType,
				FieldName:        DefaultResolverField,
				RequestTemplate:  DefaultRequestTemplate,
				ResponseTemplate: DefaultResponseTemplate,
			},
		},
		Function: FunctionConf{
			ID:          DefaultFunctionID,
			Runtime:     DefaultRuntime,
			Handler:     DefaultHandler,
			Code:        DefaultCode,
			TableEnvVar: DefaultTableEnvVar,
		},
		Schedule: ScheduleConf{
			RuleID:      DefaultRuleID,
			RateMinutes: DefaultRateMinutes,
		},
		Outputs: OutputsConf{
			APIID:  DefaultOutputAPIID,
			APIKey: DefaultOutputAPIKey,
		},
		Logging: LoggingConf{
			Enabled: true,
			Level:   "info",
			Format:  "console",
		},
	}
}

// ApplyRuntimeProfile ajusta handler e pacote quando o runtime Go foi
// escolhido sem sobrescrever os valores do pacote Node.
func (c *StackConfig) ApplyRuntimeProfile() {
	if !c.Function.IsGo() {
		return
	}
	if c.Function.Handler == DefaultHandler {
		c.Function.Handler = GoHandler
	}
	if c.Function.Code == DefaultCode {
		c.Function.Code = GoCode
	}
	if c.Function.MemorySize == 0 {
		c.Function.MemorySize = GoMemoryMiB
	}
}

// Package guestuserbackend reúne a stack de usuários convidados: uma tabela
// DynamoDB de usuários, a API GraphQL (AppSync) "Book API" que lista esses
// usuários e uma função agendada que grava um convidado a cada execução.
//
// Visão Geral:
//
//  1. cmd/stack (app CDK): declara tabela, API, resolver Query.listUsers,
//     função addUserFunction, regra addUserRule e os outputs GraphQLAPIID e
//     GraphQLAPIKey a partir de um stack.yaml (GUEST_STACK_CONFIG).
//  2. cmd/adduser: implementação Go da função agendada (runtime "go").
//  3. cmd/preview: servidor local que executa Query.listUsers contra a tabela.
//  4. cmd/toolkit: "validate -file <fonte>" verifica configuração e assets
//     antes do synth.
//
// Sub-Pacotes Principais:
//
//   - pkg/config: tipos, padrões, validação e variáveis de ambiente.
//   - pkg/loader: leitura da configuração (arquivo, S3, DynamoDB, SSM) e análise.
//   - pkg/stack: constructs CDK.
//   - pkg/userstore e pkg/guest: persistência tipada e gravação de convidados.
//   - pkg/graphql e pkg/transport: execução GraphQL, handler agendado e HTTP.
//
// Exemplo de Uso:
//
//	GUEST_STACK_CONFIG=stack.yaml npx cdk synth
//	go run ./cmd/toolkit validate -file stack.yaml
package guestuserbackend

package graphql

import (
	"context"
	"fmt"
	"os"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
)

// Engine executa consultas sobre o schema declarado no arquivo SDL da API.
// Apenas a raiz Query é montada; campos sem resolver registrado usam o
// resolver padrão (leitura do valor pai).
type Engine struct {
	Schema graphql.Schema
}

// Resolvers mapeia "Tipo.campo" para a função que o resolve.
type Resolvers map[string]graphql.FieldResolveFn

// NewEngineFromFile lê o SDL do disco e monta o Engine.
func NewEngineFromFile(path string, resolvers Resolvers) (*Engine, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graphql: leitura do schema: %w", err)
	}
	return NewEngine(body, resolvers)
}

func NewEngine(sdl []byte, resolvers Resolvers) (*Engine, error) {
	doc, err := parser.Parse(parser.ParseParams{
		Source: source.NewSource(&source.Source{Body: sdl, Name: "schema.graphql"}),
	})
	if err != nil {
		return nil, fmt.Errorf("graphql: schema inválido: %w", err)
	}

	schema, err := buildSchema(doc, resolvers)
	if err != nil {
		return nil, err
	}
	return &Engine{Schema: schema}, nil
}

func (e *Engine) Execute(ctx context.Context, query string, variables map[string]interface{}) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         e.Schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	})
}

// objectDefs agrupa definições e extensões ("extend type") pelo nome.
func objectDefs(doc *ast.Document) (map[string][]*ast.FieldDefinition, []string) {
	fields := make(map[string][]*ast.FieldDefinition)
	var order []string

	for _, def := range doc.Definitions {
		var obj *ast.ObjectDefinition
		switch d := def.(type) {
		case *ast.ObjectDefinition:
			obj = d
		case *ast.TypeExtensionDefinition:
			obj = d.Definition
		}
		if obj == nil || obj.Name == nil {
			continue
		}
		name := obj.Name.Value
		if _, seen := fields[name]; !seen {
			order = append(order, name)
		}
		fields[name] = append(fields[name], obj.Fields...)
	}
	return fields, order
}

func buildSchema(doc *ast.Document, resolvers Resolvers) (graphql.Schema, error) {
	defs, order := objectDefs(doc)
	if _, ok := defs["Query"]; !ok {
		return graphql.Schema{}, fmt.Errorf("graphql: schema sem tipo Query")
	}

	// 1. Declara objetos
	objects := make(map[string]*graphql.Object)
	for _, name := range order {
		objects[name] = graphql.NewObject(graphql.ObjectConfig{
			Name:   name,
			Fields: graphql.Fields{},
		})
	}

	// 2. Preenche campos
	for _, name := range order {
		for _, f := range defs[name] {
			field := &graphql.Field{
				Type: resolveType(f.Type, objects),
				Args: graphql.FieldConfigArgument{},
			}
			for _, arg := range f.Arguments {
				field.Args[arg.Name.Value] = &graphql.ArgumentConfig{
					Type: resolveInputType(arg.Type),
				}
			}
			if fn, ok := resolvers[name+"."+f.Name.Value]; ok {
				field.Resolve = fn
			}
			objects[name].AddFieldConfig(f.Name.Value, field)
		}
	}

	for key := range resolvers {
		if !resolverTargetExists(defs, key) {
			return graphql.Schema{}, fmt.Errorf("graphql: resolver para campo inexistente: %s", key)
		}
	}

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: objects["Query"],
	})
}

func resolverTargetExists(defs map[string][]*ast.FieldDefinition, key string) bool {
	for typeName, fields := range defs {
		for _, f := range fields {
			if typeName+"."+f.Name.Value == key {
				return true
			}
		}
	}
	return false
}

func resolveType(t ast.Type, objects map[string]*graphql.Object) graphql.Output {
	switch tt := t.(type) {
	case *ast.NonNull:
		return graphql.NewNonNull(resolveType(tt.Type, objects))
	case *ast.List:
		return graphql.NewList(resolveType(tt.Type, objects))
	case *ast.Named:
		if obj, ok := objects[tt.Name.Value]; ok {
			return obj
		}
		return scalar(tt.Name.Value)
	}
	return graphql.String
}

func resolveInputType(t ast.Type) graphql.Input {
	switch tt := t.(type) {
	case *ast.NonNull:
		return graphql.NewNonNull(resolveInputType(tt.Type))
	case *ast.List:
		return graphql.NewList(resolveInputType(tt.Type))
	case *ast.Named:
		return scalar(tt.Name.Value)
	}
	return graphql.String
}

// scalar: escalares AWS (AWSDateTime, AWSEmail...) e desconhecidos viram String.
func scalar(name string) *graphql.Scalar {
	switch name {
	case "Int":
		return graphql.Int
	case "Float":
		return graphql.Float
	case "Boolean":
		return graphql.Boolean
	case "ID":
		return graphql.ID
	default:
		return graphql.String
	}
}

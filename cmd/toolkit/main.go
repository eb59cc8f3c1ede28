package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/raywall/guest-user-backend/pkg/loader"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

// run devolve o código de saída; 1 falha o pipeline de CI.
func run(ctx context.Context, args []string, out io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(out, "Comandos esperados: validate")
		return 1
	}

	switch args[0] {
	case "validate":
		validateCmd := flag.NewFlagSet("validate", flag.ContinueOnError)
		validateCmd.SetOutput(out)
		filePtr := validateCmd.String("file", "", "Caminho do arquivo YAML ou URI s3://, dynamodb://, ssm://")
		if err := validateCmd.Parse(args[1:]); err != nil {
			return 1
		}
		if *filePtr == "" {
			fmt.Fprintln(out, "Erro: flag -file é obrigatória")
			return 1
		}
		return runValidate(ctx, *filePtr, out, os.Getenv("OUTPUT_FORMAT") == "json")
	default:
		fmt.Fprintf(out, "Comando desconhecido: %s\n", args[0])
		return 1
	}
}

func runValidate(ctx context.Context, path string, out io.Writer, asJSON bool) int {
	if !asJSON {
		fmt.Fprintf(out, "🔍 Analisando configuração: %s ...\n", path)
	}

	// 1. Load (Validação Estrutural)
	cfg, err := loader.Load(ctx, path)
	if err != nil {
		fmt.Fprintf(out, "❌ Erro de Carregamento/Estrutura:\n%v\n", err)
		return 1
	}

	// 2. Analyze (assets, schema e guardrails)
	report, err := loader.Analyze(cfg)
	if err != nil {
		fmt.Fprintf(out, "❌ Erro interno do analisador: %v\n", err)
		return 1
	}

	if asJSON {
		jsonOutput, _ := json.Marshal(report)
		fmt.Fprintln(out, string(jsonOutput))
	} else {
		for _, w := range report.Warnings {
			fmt.Fprintf(out, "⚠️  %s\n", w)
		}
		if report.Valid {
			fmt.Fprintln(out, "✅ Configuração Válida e Pronta para Deploy!")
		} else {
			fmt.Fprintln(out, "❌ A configuração contém erros lógicos:")
			for _, e := range report.Errors {
				fmt.Fprintf(out, " - %s\n", e)
			}
		}
	}

	if !report.Valid {
		return 1
	}
	return 0
}

package injector

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/raywall/guest-user-backend/pkg/awsclient"
)

// Regex para capturar padrões ${tipo.chave}
// Ex: ${env.API_KEY}, ${ssm./guest/table}, ${secret.guest/preview#apiKey}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

// ResolveFunc busca o valor de uma referência (env, ssm ou secret).
type ResolveFunc func(ctx context.Context, sourceType, key string) (string, error)

type Injector struct {
	resolve ResolveFunc
}

// New cria um Injector que resolve ssm/secret na AWS usando AWS_REGION.
func New() *Injector {
	return &Injector{resolve: awsResolve}
}

// NewWithResolver permite substituir a origem dos valores (testes, cache).
func NewWithResolver(fn ResolveFunc) *Injector {
	return &Injector{resolve: fn}
}

func (i *Injector) Inject(ctx context.Context, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	return i.injectRecursive(ctx, v.Elem())
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		for k := 0; k < v.NumField(); k++ {
			if err := i.injectRecursive(ctx, v.Field(k)); err != nil {
				return err
			}
		}

	case reflect.String:
		if !v.CanSet() {
			return nil
		}
		newValue, err := i.interpolateString(ctx, v.String())
		if err != nil {
			return err
		}
		v.SetString(newValue)

	case reflect.Map:
		if v.IsNil() || v.Type().Key().Kind() != reflect.String {
			return nil
		}
		return i.injectMap(ctx, v)

	case reflect.Ptr, reflect.Interface:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := i.injectRecursive(ctx, v.Index(j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// interpolateString realiza a substituição baseada em Regex
func (i *Injector) interpolateString(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var err error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		if err != nil {
			return match
		}
		sub := pattern.FindStringSubmatch(match)

		val, resolveErr := i.resolve(ctx, sub[1], sub[2])
		if resolveErr != nil {
			err = fmt.Errorf("falha ao resolver %s: %w", match, resolveErr)
			return match
		}
		return val
	})

	return result, err
}

// injectMap lida com mapas de string e mapas dinâmicos (valores não
// endereçáveis precisam ser regravados com SetMapIndex).
func (i *Injector) injectMap(ctx context.Context, v reflect.Value) error {
	iter := v.MapRange()
	for iter.Next() {
		elem := iter.Value()
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		if !elem.IsValid() {
			continue
		}

		switch elem.Kind() {
		case reflect.String:
			newVal, err := i.interpolateString(ctx, elem.String())
			if err != nil {
				return err
			}
			v.SetMapIndex(iter.Key(), reflect.ValueOf(newVal).Convert(v.Type().Elem()))
		case reflect.Map:
			if err := i.injectMap(ctx, elem); err != nil {
				return err
			}
		}
	}
	return nil
}

// awsResolve centraliza a busca de dados
func awsResolve(ctx context.Context, sourceType, key string) (string, error) {
	region := os.Getenv("AWS_REGION")

	switch sourceType {
	case "env":
		return os.Getenv(key), nil
	case "ssm":
		return awsclient.Parameter(ctx, region, key)
	case "secret":
		return awsclient.Secret(ctx, region, key)
	}
	return "", fmt.Errorf("origem desconhecida: %s", sourceType)
}

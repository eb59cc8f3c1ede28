package injector_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/raywall/guest-user-backend/pkg/config/injector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestConfig struct {
	Name   string
	APIKey string
	Region string
	Tags   map[string]string
	Meta   map[string]interface{}
	Nested *NestedConfig
	Rules  []NestedConfig
}

type NestedConfig struct {
	URL string
}

func fakeResolver(ctx context.Context, sourceType, key string) (string, error) {
	switch sourceType {
	case "env":
		return os.Getenv(key), nil
	case "ssm":
		if key == "/guest/name" {
			return "GuestStack", nil
		}
	case "secret":
		if key == "guest/preview#apiKey" {
			return "da2-secret", nil
		}
	}
	return "", errors.New("not found")
}

func TestInjector_Inject(t *testing.T) {
	t.Setenv("REGION", "us-east-1")

	target := &TestConfig{
		Name:   "${ssm./guest/name}",
		APIKey: "${secret.guest/preview#apiKey}",
		Region: "running in ${env.REGION}",
		Tags:   map[string]string{"env": "${env.REGION}"},
		Meta: map[string]interface{}{
			"host":    "${env.REGION}.local",
			"timeout": 5000,
			"inner":   map[string]interface{}{"k": "${ssm./guest/name}"},
		},
		Nested: &NestedConfig{URL: "https://${env.REGION}.api.com"},
		Rules:  []NestedConfig{{URL: "${env.REGION}"}},
	}

	inj := injector.NewWithResolver(fakeResolver)
	require.NoError(t, inj.Inject(context.Background(), target))

	assert.Equal(t, "GuestStack", target.Name)
	assert.Equal(t, "da2-secret", target.APIKey)
	assert.Equal(t, "running in us-east-1", target.Region)
	assert.Equal(t, "us-east-1", target.Tags["env"])
	assert.Equal(t, "us-east-1.local", target.Meta["host"])
	assert.Equal(t, 5000, target.Meta["timeout"])
	assert.Equal(t, "GuestStack", target.Meta["inner"].(map[string]interface{})["k"])
	assert.Equal(t, "https://us-east-1.api.com", target.Nested.URL)
	assert.Equal(t, "us-east-1", target.Rules[0].URL)
}

func TestInjector_ResolveError(t *testing.T) {
	target := &TestConfig{APIKey: "${secret.missing}"}

	err := injector.NewWithResolver(fakeResolver).Inject(context.Background(), target)
	assert.ErrorContains(t, err, "${secret.missing}")
}

func TestInjector_InvalidTarget(t *testing.T) {
	err := injector.New().Inject(context.Background(), TestConfig{})
	assert.Error(t, err)
}

func TestInjector_EnvWithDefaultResolver(t *testing.T) {
	t.Setenv("GUEST_TABLE", "users")
	target := &NestedConfig{URL: "${env.GUEST_TABLE}"}

	require.NoError(t, injector.New().Inject(context.Background(), target))
	assert.Equal(t, "users", target.URL)
}

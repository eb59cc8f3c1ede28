package rules

import (
	"testing"

	"github.com/raywall/guest-user-backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBool(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)

	data := map[string]interface{}{
		"schedule": map[string]interface{}{"rate_minutes": 5},
	}

	ok, err := rm.EvaluateBool("schedule.rate_minutes >= 5", data)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = rm.EvaluateBool("schedule.rate_minutes < 5", data)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = rm.EvaluateBool("", data)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = rm.EvaluateBool("schedule.rate_minutes + 1", data)
	assert.Error(t, err)

	_, err = rm.EvaluateBool("schedule.(", data)
	assert.Error(t, err)
}

func TestActivation_UsesYAMLKeys(t *testing.T) {
	act, err := Activation(config.Default())
	require.NoError(t, err)

	schedule := act["schedule"].(map[string]interface{})
	assert.Equal(t, 5, schedule["rate_minutes"])

	table := act["table"].(map[string]interface{})
	assert.Equal(t, "userId", table["partition_key"])

	_, hasGuardrails := act["guardrails"]
	assert.False(t, hasGuardrails)
}

func TestCheckGuardrails(t *testing.T) {
	rm, err := NewRuleManager()
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Guardrails = []config.GuardrailRule{
		{ID: "expiry", Expr: "api.authorization.expires_days <= 30"},
		{ID: "xray", Expr: "api.xray == false", Message: "xray deve estar desligado"},
		{ID: "broken", Expr: "nope.field == 1"},
	}

	results, err := rm.CheckGuardrails(cfg)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.Equal(t, "xray deve estar desligado", results[1].Message)
	assert.False(t, results[2].Passed)
	assert.NotEmpty(t, results[2].Message)
}

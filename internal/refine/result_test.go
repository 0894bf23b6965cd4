package refine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultAccessorsOnPartialPayload(t *testing.T) {
	result, err := Decode([]byte(`{"core_intent":{"summary":"x"}}`))
	require.NoError(t, err)

	intent := result.CoreIntent()
	assert.Equal(t, Optional{Value: "x", Present: true}, intent.Summary)
	assert.False(t, intent.PrimaryGoal.Present)
	assert.False(t, intent.TargetAudience.Present)
	assert.Empty(t, result.FunctionalRequirements())
}

func TestResultAccessorsTolerateWrongShapes(t *testing.T) {
	result, err := Decode([]byte(`{"core_intent":"flat","specifications":{"functional_requirements":["ok",3,null,"also ok"]}}`))
	require.NoError(t, err)

	assert.Equal(t, CoreIntent{}, result.CoreIntent())
	assert.Equal(t, []string{"ok", "also ok"}, result.FunctionalRequirements())

	result, err = Decode([]byte(`{"specifications":{"functional_requirements":"single"}}`))
	require.NoError(t, err)
	assert.Nil(t, result.FunctionalRequirements())
}

func TestZeroResultIsSafe(t *testing.T) {
	var result Result
	assert.Equal(t, CoreIntent{}, result.CoreIntent())
	assert.Nil(t, result.FunctionalRequirements())
	assert.Equal(t, "{}", result.PrettyJSON())
}

func TestPrettyJSONKeepsUnrecognizedFields(t *testing.T) {
	body := `{"meta_info":{"confidence_score":"High"},"deliverables":["MVP"],"core_intent":{"summary":"x"}}`
	result, err := Decode([]byte(body))
	require.NoError(t, err)

	pretty := result.PrettyJSON()
	assert.Contains(t, pretty, "\n  \"meta_info\": {\n    \"confidence_score\": \"High\"\n  }")

	var roundTrip map[string]any
	require.NoError(t, json.Unmarshal([]byte(pretty), &roundTrip))
	assert.Equal(t, result.Fields(), roundTrip)
}

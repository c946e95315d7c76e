package wizard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepOrdering(t *testing.T) {
	// 到達済み判定は整数順序に依存する
	assert.True(t, StepAPIKeyPending < StepDiscovery)
	assert.True(t, StepDiscovery < StepConfiguration)
	assert.True(t, StepConfiguration < StepScripting)
	assert.True(t, StepScripting < StepAssets)
}

func TestStepJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(StepScripting)
	require.NoError(t, err)
	assert.Equal(t, `"scripting"`, string(data))

	var step Step
	require.NoError(t, json.Unmarshal([]byte(`"assets"`), &step))
	assert.Equal(t, StepAssets, step)
}

func TestParseStepUnknownName(t *testing.T) {
	_, err := ParseStep("teleport")
	assert.Error(t, err)

	var step Step
	assert.Error(t, json.Unmarshal([]byte(`"teleport"`), &step))
}

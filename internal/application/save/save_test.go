package save

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = Defaults{LevelCount: 3, Gold: 200, Lives: 20}

func TestFromState_RoundTripsThroughNormalize(t *testing.T) {
	s := State{
		LevelIndex:     1,
		Gold:           55,
		Lives:          7,
		Towers:         []Tower{{X: 2, Y: 1, TypeID: "arrow", Level: 3}},
		LevelTime:      12.5,
		SpawnedIndices: []int{0, 1, 2},
	}

	got, repairs := Normalize(FromState(s), defaults)

	assert.Empty(t, repairs)
	assert.Equal(t, s, got)
}

func TestRecord_JSONKeys(t *testing.T) {
	data, err := json.Marshal(FromState(State{
		LevelIndex: 2,
		Gold:       10,
		Lives:      3,
		Towers:     []Tower{{X: 1, Y: 2, TypeID: "cannon", Level: 1}},
		LevelTime:  4,
	}))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"level_index", "gold", "lives", "towers", "level_time", "spawned_indices"} {
		assert.Contains(t, raw, key)
	}

	towers := raw["towers"].([]any)
	tower := towers[0].(map[string]any)
	assert.Equal(t, "cannon", tower["type_id"])
	assert.Equal(t, 1.0, tower["tx"])
	assert.Equal(t, 2.0, tower["ty"])
}

func TestNormalize_EmptyRecordUsesDefaults(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{}`), &r))

	got, repairs := Normalize(r, defaults)

	assert.Equal(t, 0, got.LevelIndex)
	assert.Equal(t, 200, got.Gold)
	assert.Equal(t, 20, got.Lives)
	assert.Equal(t, 0.0, got.LevelTime)
	assert.Empty(t, got.Towers)
	assert.Empty(t, got.SpawnedIndices)
	assert.Len(t, repairs, 4)
}

func TestNormalize_OutOfRangeFields(t *testing.T) {
	data := `{
		"level_index": 9,
		"gold": -1,
		"lives": 0,
		"level_time": -3,
		"spawned_indices": [-1, 0, 0, 4],
		"towers": [
			{"tx": 1, "ty": 1, "type_id": "arrow", "level": 0},
			{"tx": 2, "type_id": "arrow"},
			{"tx": 3, "ty": 3, "type_id": "cannon"}
		]
	}`
	var r Record
	require.NoError(t, json.Unmarshal([]byte(data), &r))

	got, repairs := Normalize(r, defaults)

	assert.Equal(t, 0, got.LevelIndex)
	assert.Equal(t, 200, got.Gold)
	assert.Equal(t, 20, got.Lives)
	assert.Equal(t, 0.0, got.LevelTime)
	assert.Equal(t, []int{0, 4}, got.SpawnedIndices, "negatives dropped, duplicates collapsed")
	assert.Equal(t, []Tower{
		{X: 1, Y: 1, TypeID: "arrow", Level: 1},
		{X: 3, Y: 3, TypeID: "cannon", Level: 1},
	}, got.Towers)
	assert.Len(t, repairs, 7)
}

func TestNormalize_KeepsValidFields(t *testing.T) {
	data := `{"level_index": 2, "gold": 0, "lives": 1, "level_time": 0}`
	var r Record
	require.NoError(t, json.Unmarshal([]byte(data), &r))

	got, repairs := Normalize(r, defaults)

	assert.Empty(t, repairs)
	assert.Equal(t, 2, got.LevelIndex)
	assert.Equal(t, 0, got.Gold)
	assert.Equal(t, 1, got.Lives)
}

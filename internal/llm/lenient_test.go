package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manojvishalkijo/xevedoc/internal/llm"
)

func TestExtractJSONObjectPlain(t *testing.T) {
	got, err := llm.ExtractJSONObject(`{"category":"Invoice"}`)

	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"Invoice"}`, string(got))
}

func TestExtractJSONObjectFenced(t *testing.T) {
	raw := "```json\n{\"category\": \"Resume\", \"confidence\": 0.9}\n```"

	got, err := llm.ExtractJSONObject(raw)

	require.NoError(t, err)
	assert.JSONEq(t, `{"category":"Resume","confidence":0.9}`, string(got))
}

func TestExtractJSONObjectSurroundedByProse(t *testing.T) {
	raw := `Sure! Here is the result: {"a": {"b": 1}} hope that helps`

	got, err := llm.ExtractJSONObject(raw)

	require.NoError(t, err)
	assert.JSONEq(t, `{"a":{"b":1}}`, string(got))
}

func TestExtractJSONObjectBracesInsideStrings(t *testing.T) {
	raw := `{"note": "braces } inside { strings", "n": 2}`

	got, err := llm.ExtractJSONObject(raw)

	require.NoError(t, err)
	assert.JSONEq(t, raw, string(got))
}

func TestExtractJSONObjectNoObject(t *testing.T) {
	_, err := llm.ExtractJSONObject("I could not produce JSON, sorry")

	require.Error(t, err)
}

func TestExtractJSONObjectUnbalanced(t *testing.T) {
	_, err := llm.ExtractJSONObject(`{"a": 1`)

	require.Error(t, err)
}

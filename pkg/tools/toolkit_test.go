package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/interfaces"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/logging"
)

type stubTool struct {
	name   string
	params map[string]interfaces.ParameterSpec
	output string
	err    error
}

func (t *stubTool) Name() string        { return t.name }
func (t *stubTool) Description() string { return "stub tool " + t.name }
func (t *stubTool) Parameters() map[string]interfaces.ParameterSpec {
	return t.params
}
func (t *stubTool) Execute(_ context.Context, args string) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	if t.output != "" {
		return t.output, nil
	}
	return args, nil
}

func TestToolkit_DefinitionsSortedByName(t *testing.T) {
	tk := NewToolkit(
		&stubTool{name: "zeta"},
		&stubTool{name: "alpha"},
	).WithLogger(logging.NewNoOpLogger())

	defs := tk.Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, "function", defs[0].Type)
	assert.Equal(t, "alpha", defs[0].Function.Name)
	assert.Equal(t, "zeta", defs[1].Function.Name)
}

func TestToolkit_Dispatch(t *testing.T) {
	tk := NewToolkit(&stubTool{name: "echo"}).WithLogger(logging.NewNoOpLogger())

	out, err := tk.Dispatch(context.Background(), "echo", `{"x":1}`)
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, out)
}

func TestToolkit_DispatchUnknownTool(t *testing.T) {
	tk := NewToolkit().WithLogger(logging.NewNoOpLogger())

	_, err := tk.Dispatch(context.Background(), "missing", "{}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestToolkit_RegisterReplaces(t *testing.T) {
	tk := NewToolkit(&stubTool{name: "echo", output: "old"}).WithLogger(logging.NewNoOpLogger())
	tk.Register(&stubTool{name: "echo", output: "new"})

	out, err := tk.Dispatch(context.Background(), "echo", "{}")
	require.NoError(t, err)
	assert.Equal(t, "new", out)
	assert.Len(t, tk.Tools(), 1)
}

func TestSchemaFromParameters(t *testing.T) {
	schema := SchemaFromParameters(map[string]interfaces.ParameterSpec{
		"query": {
			Type:        "string",
			Description: "the query",
			Required:    true,
		},
		"limit": {
			Type:        "integer",
			Description: "max results",
			Default:     10,
		},
		"tags": {
			Type:        "array",
			Description: "filter tags",
			Items:       &interfaces.ParameterSpec{Type: "string"},
		},
		"unit": {
			Type:        "string",
			Description: "unit",
			Required:    true,
			Enum:        []interface{}{"C", "F"},
		},
	})

	assert.Equal(t, "object", schema["type"])
	assert.ElementsMatch(t, []string{"query", "unit"}, schema["required"])

	properties, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)

	limit := properties["limit"].(map[string]interface{})
	assert.Equal(t, 10, limit["default"])

	tags := properties["tags"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"type": "string"}, tags["items"])

	unit := properties["unit"].(map[string]interface{})
	assert.Equal(t, []interface{}{"C", "F"}, unit["enum"])
}

func TestSchemaFromParameters_NoRequired(t *testing.T) {
	schema := SchemaFromParameters(map[string]interfaces.ParameterSpec{})
	_, hasRequired := schema["required"]
	assert.False(t, hasRequired)
}

package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/foundry"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/interfaces"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/logging"
)

// Toolkit is a registry of local function tools. It converts the tools into
// the service's function-tool definitions and dispatches the tool calls a
// paused run hands back. It satisfies foundry.ToolDispatcher.
type Toolkit struct {
	mu     sync.RWMutex
	tools  map[string]interfaces.Tool
	logger logging.Logger
}

// NewToolkit creates a toolkit holding the given tools
func NewToolkit(tools ...interfaces.Tool) *Toolkit {
	tk := &Toolkit{
		tools:  make(map[string]interfaces.Tool, len(tools)),
		logger: logging.New(),
	}
	for _, tool := range tools {
		tk.tools[tool.Name()] = tool
	}
	return tk
}

// WithLogger sets a custom logger for the toolkit
func (tk *Toolkit) WithLogger(logger logging.Logger) *Toolkit {
	tk.logger = logger
	return tk
}

// Register adds a tool, replacing any existing tool with the same name
func (tk *Toolkit) Register(tool interfaces.Tool) {
	tk.mu.Lock()
	defer tk.mu.Unlock()
	tk.tools[tool.Name()] = tool
}

// Tools returns the registered tools sorted by name
func (tk *Toolkit) Tools() []interfaces.Tool {
	tk.mu.RLock()
	defer tk.mu.RUnlock()

	names := make([]string, 0, len(tk.tools))
	for name := range tk.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	tools := make([]interfaces.Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, tk.tools[name])
	}
	return tools
}

// Definitions returns the function-tool definitions to attach to an agent
func (tk *Toolkit) Definitions() []foundry.ToolDefinition {
	tools := tk.Tools()
	defs := make([]foundry.ToolDefinition, 0, len(tools))
	for _, tool := range tools {
		defs = append(defs, foundry.FunctionTool(foundry.FunctionDefinition{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  SchemaFromParameters(tool.Parameters()),
		}))
	}
	return defs
}

// Dispatch executes the named tool with the JSON-encoded arguments
func (tk *Toolkit) Dispatch(ctx context.Context, name, arguments string) (string, error) {
	tk.mu.RLock()
	tool, ok := tk.tools[name]
	tk.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	tk.logger.Debug(ctx, "Executing local tool", map[string]interface{}{
		"tool": name,
	})
	output, err := tool.Execute(ctx, arguments)
	if err != nil {
		return "", fmt.Errorf("tool %s failed: %w", name, err)
	}
	return output, nil
}

// SchemaFromParameters synthesizes a JSON schema object from a tool's
// parameter specs, in the shape the function-calling API expects.
func SchemaFromParameters(params map[string]interfaces.ParameterSpec) map[string]interface{} {
	properties := make(map[string]interface{}, len(params))
	var required []string

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := params[name]
		property := map[string]interface{}{
			"type":        spec.Type,
			"description": spec.Description,
		}
		if spec.Default != nil {
			property["default"] = spec.Default
		}
		if len(spec.Enum) > 0 {
			property["enum"] = spec.Enum
		}
		if spec.Type == "array" && spec.Items != nil {
			property["items"] = map[string]interface{}{"type": spec.Items.Type}
		}
		properties[name] = property
		if spec.Required {
			required = append(required, name)
		}
	}

	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

package interfaces

import "context"

// Tool represents a function tool that can be executed locally on behalf of
// a hosted agent run.
type Tool interface {
	// Name returns the name of the tool
	Name() string

	// Description returns a description of what the tool does
	Description() string

	// Parameters returns the parameters that the tool accepts
	Parameters() map[string]ParameterSpec

	// Execute executes the tool with the given JSON-encoded arguments
	Execute(ctx context.Context, args string) (string, error)
}

// ParameterSpec describes a single tool parameter
type ParameterSpec struct {
	Type        string         // JSON schema type (string, number, integer, boolean, object)
	Description string         // Human-readable description
	Required    bool           // Whether the parameter must be provided
	Default     interface{}    // Default value, if any
	Enum        []interface{}  // Allowed values, if restricted
	Items       *ParameterSpec // Element spec when Type is "array"
}

package mcp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes MCP client failures
type ErrorType string

const (
	ErrorTypeConnection     ErrorType = "CONNECTION_ERROR"
	ErrorTypeTimeout        ErrorType = "TIMEOUT_ERROR"
	ErrorTypeAuthentication ErrorType = "AUTHENTICATION_ERROR"
	ErrorTypeToolNotFound   ErrorType = "TOOL_NOT_FOUND"
	ErrorTypeToolInvalidArg ErrorType = "TOOL_INVALID_ARGS"
	ErrorTypeToolExecution  ErrorType = "TOOL_EXECUTION_ERROR"
	ErrorTypeProtocol       ErrorType = "PROTOCOL_ERROR"
	ErrorTypeSerialization  ErrorType = "SERIALIZATION_ERROR"
	ErrorTypeUnknown        ErrorType = "UNKNOWN_ERROR"
)

// Error is a structured error from MCP client operations
type Error struct {
	Operation  string    // the operation that failed, e.g. "CallTool"
	ServerName string    // name or URL of the MCP server
	ErrorType  ErrorType // category of error
	Cause      error     // the underlying error
	Retryable  bool      // whether the operation might succeed on retry
}

func (e *Error) Error() string {
	var parts []string
	if e.ServerName != "" {
		parts = append(parts, fmt.Sprintf("MCP server '%s'", e.ServerName))
	} else {
		parts = append(parts, "MCP operation")
	}
	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("operation '%s'", e.Operation))
	}
	parts = append(parts, "failed")
	if e.ErrorType != ErrorTypeUnknown {
		parts = append(parts, fmt.Sprintf("(%s)", e.ErrorType))
	}
	message := strings.Join(parts, " ")
	if e.Cause != nil {
		message += fmt.Sprintf(": %v", e.Cause)
	}
	return message
}

func (e *Error) Unwrap() error { return e.Cause }

// IsRetryable reports whether retrying the operation could help
func (e *Error) IsRetryable() bool { return e.Retryable }

// NewError creates a structured MCP error
func NewError(operation, serverName string, errorType ErrorType, cause error) *Error {
	return &Error{
		Operation:  operation,
		ServerName: serverName,
		ErrorType:  errorType,
		Cause:      cause,
		Retryable:  errorType == ErrorTypeConnection || errorType == ErrorTypeTimeout,
	}
}

// Classify wraps an arbitrary error into a categorized *Error based on its
// message. Existing *Error values pass through unchanged.
func Classify(err error, operation, serverName string) *Error {
	if err == nil {
		return nil
	}
	var mcpErr *Error
	if errors.As(err, &mcpErr) {
		return mcpErr
	}

	msg := strings.ToLower(err.Error())
	var errorType ErrorType
	switch {
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "no route to host"),
		strings.Contains(msg, "network unreachable"):
		errorType = ErrorTypeConnection
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline exceeded"):
		errorType = ErrorTypeTimeout
	case strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "forbidden"),
		strings.Contains(msg, "authentication"):
		errorType = ErrorTypeAuthentication
	case strings.Contains(msg, "unknown tool"),
		strings.Contains(msg, "tool not found"):
		errorType = ErrorTypeToolNotFound
	case strings.Contains(msg, "parameter is required"),
		strings.Contains(msg, "invalid argument"):
		errorType = ErrorTypeToolInvalidArg
	case strings.Contains(msg, "unmarshal"),
		strings.Contains(msg, "marshal"),
		strings.Contains(msg, "invalid json"),
		strings.Contains(msg, "parse"):
		errorType = ErrorTypeSerialization
	case strings.Contains(msg, "method not found"),
		strings.Contains(msg, "protocol"),
		strings.Contains(msg, "unexpected"):
		errorType = ErrorTypeProtocol
	default:
		errorType = ErrorTypeUnknown
	}
	return NewError(operation, serverName, errorType, err)
}

// FriendlyMessage renders an error for exercise console output
func FriendlyMessage(err error) string {
	var mcpErr *Error
	if !errors.As(err, &mcpErr) {
		return err.Error()
	}

	switch mcpErr.ErrorType {
	case ErrorTypeConnection:
		return fmt.Sprintf("Could not connect to MCP server '%s'. Check the server URL and that the server is running.", mcpErr.ServerName)
	case ErrorTypeTimeout:
		return fmt.Sprintf("MCP server '%s' took too long to respond. This might be temporary - try again.", mcpErr.ServerName)
	case ErrorTypeAuthentication:
		return fmt.Sprintf("Authentication failed for MCP server '%s'. Check your credentials.", mcpErr.ServerName)
	case ErrorTypeToolNotFound:
		return fmt.Sprintf("Requested tool is not available on MCP server '%s'. List the tools first.", mcpErr.ServerName)
	case ErrorTypeToolInvalidArg:
		return "Invalid arguments provided to the MCP tool. Check the tool's parameter requirements."
	default:
		return fmt.Sprintf("MCP server '%s' error: %v", mcpErr.ServerName, mcpErr.Cause)
	}
}

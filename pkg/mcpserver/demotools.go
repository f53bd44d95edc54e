package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// DemoToolset returns the self-contained demo tools used by the mock-server
// exercise: echo, a small arithmetic calculator and a clock. now overrides
// the clock in tests; pass nil for the wall clock.
func DemoToolset(now func() time.Time) []Tool {
	if now == nil {
		now = time.Now
	}
	return []Tool{
		{
			Name:        "echo",
			Description: "Echo back the input text",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to echo back",
					},
				},
				"required": []string{"text"},
			},
			Handler: func(_ context.Context, args map[string]interface{}) (string, error) {
				text, _ := args["text"].(string)
				return "Echo: " + text, nil
			},
		},
		{
			Name:        "calculate",
			Description: "Perform basic arithmetic calculations",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"expression": map[string]interface{}{
						"type":        "string",
						"description": "Mathematical expression to evaluate (e.g., '2 + 3 * 4')",
					},
				},
				"required": []string{"expression"},
			},
			Handler: func(_ context.Context, args map[string]interface{}) (string, error) {
				expression, _ := args["expression"].(string)
				result, err := Evaluate(expression)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Result: %s", formatNumber(result)), nil
			},
		},
		{
			Name:        "current_time",
			Description: "Get the current date and time",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
				"required":   []string{},
			},
			Handler: func(_ context.Context, _ map[string]interface{}) (string, error) {
				return "Current time: " + now().Format("2006-01-02 15:04:05"), nil
			},
		},
	}
}

// DemoResources is the static resource set for the demo toolset
type DemoResources struct {
	Name    string
	Version string
	Tools   []Tool
}

func (r *DemoResources) ListResources(_ context.Context) ([]Resource, error) {
	return []Resource{
		{
			URI:         "mcp://server/info",
			Name:        "Server Information",
			Description: "Information about this MCP server",
			MimeType:    "application/json",
		},
		{
			URI:         "mcp://server/tools",
			Name:        "Available Tools",
			Description: "List of all available tools",
			MimeType:    "application/json",
		},
	}, nil
}

func (r *DemoResources) ReadResource(_ context.Context, uri string) (string, error) {
	switch uri {
	case "mcp://server/info":
		return indentJSON(map[string]string{
			"name":        r.Name,
			"version":     r.Version,
			"description": "A basic MCP server for learning",
		})
	case "mcp://server/tools":
		tools := make(map[string]interface{}, len(r.Tools))
		for _, tool := range r.Tools {
			tools[tool.Name] = map[string]interface{}{
				"description": tool.Description,
				"inputSchema": tool.InputSchema,
			}
		}
		return indentJSON(tools)
	default:
		return "", fmt.Errorf("Unknown resource URI: %s", uri)
	}
}

// Evaluate computes an infix arithmetic expression supporting + - * /,
// parentheses, unary minus and the usual precedence.
func Evaluate(expression string) (float64, error) {
	p := &exprParser{input: expression}
	value, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	return value, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpaces() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *exprParser) peek() byte {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

// parseExpr handles + and -
func (p *exprParser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

// parseTerm handles * and /
func (p *exprParser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		default:
			return left, nil
		}
	}
}

// parseFactor handles numbers, parentheses and unary minus
func (p *exprParser) parseFactor() (float64, error) {
	switch p.peek() {
	case '(':
		p.pos++
		value, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return value, nil
	case '-':
		p.pos++
		value, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -value, nil
	case 0:
		return 0, fmt.Errorf("unexpected end of expression")
	}

	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("unexpected character %q at position %d", p.input[p.pos], p.pos)
	}
	value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return value, nil
}

// formatNumber renders integral results without a decimal point
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	data, _ := json.Marshal(v)
	return strings.TrimSpace(string(data))
}

// Package business provides the local function tools used by the
// function-calling exercise: current time, mortgage math, email validation
// and temperature conversion. All tools are pure and return JSON.
package business

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/interfaces"
)

// All returns the full business toolset
func All() []interfaces.Tool {
	return []interfaces.Tool{
		&DateTimeTool{},
		&MortgageTool{},
		&EmailValidatorTool{},
		&TemperatureTool{},
	}
}

// DateTimeTool reports the current date and time
type DateTimeTool struct {
	// Now overrides the clock in tests
	Now func() time.Time
}

func (t *DateTimeTool) Name() string { return "get_current_datetime" }

func (t *DateTimeTool) Description() string {
	return "Get the current date and time in UTC, ISO-8601 formatted."
}

func (t *DateTimeTool) Parameters() map[string]interfaces.ParameterSpec {
	return map[string]interfaces.ParameterSpec{}
}

func (t *DateTimeTool) Execute(_ context.Context, _ string) (string, error) {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	result := map[string]string{
		"datetime": now().UTC().Format(time.RFC3339),
	}
	return encode(result)
}

// MortgageTool calculates a monthly mortgage payment
type MortgageTool struct{}

func (t *MortgageTool) Name() string { return "calculate_mortgage" }

func (t *MortgageTool) Description() string {
	return "Calculate the monthly payment, total payment and total interest for a fixed-rate mortgage."
}

func (t *MortgageTool) Parameters() map[string]interfaces.ParameterSpec {
	return map[string]interfaces.ParameterSpec{
		"principal": {
			Type:        "number",
			Description: "Loan amount in dollars",
			Required:    true,
		},
		"rate": {
			Type:        "number",
			Description: "Annual interest rate as a percentage",
			Required:    true,
		},
		"years": {
			Type:        "integer",
			Description: "Loan term in years",
			Required:    true,
		},
	}
}

type mortgageArgs struct {
	Principal float64 `json:"principal"`
	Rate      float64 `json:"rate"`
	Years     int     `json:"years"`
}

// MortgageResult is the payment breakdown returned by the tool
type MortgageResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
	Principal      float64 `json:"principal"`
	Rate           float64 `json:"rate"`
	Years          int     `json:"years"`
}

func (t *MortgageTool) Execute(_ context.Context, args string) (string, error) {
	var in mortgageArgs
	if err := json.Unmarshal([]byte(args), &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	if in.Principal <= 0 {
		return "", fmt.Errorf("principal must be positive")
	}
	if in.Years <= 0 {
		return "", fmt.Errorf("years must be positive")
	}

	result := CalculateMortgage(in.Principal, in.Rate, in.Years)
	return encode(result)
}

// CalculateMortgage computes the standard amortization breakdown. A zero
// rate degenerates to principal divided evenly across the payments.
func CalculateMortgage(principal, rate float64, years int) MortgageResult {
	monthlyRate := rate / 100 / 12
	payments := float64(years * 12)

	var monthly float64
	if monthlyRate == 0 {
		monthly = principal / payments
	} else {
		factor := math.Pow(1+monthlyRate, payments)
		monthly = principal * (monthlyRate * factor) / (factor - 1)
	}

	total := monthly * payments
	return MortgageResult{
		MonthlyPayment: round2(monthly),
		TotalPayment:   round2(total),
		TotalInterest:  round2(total - principal),
		Principal:      principal,
		Rate:           rate,
		Years:          years,
	}
}

// EmailValidatorTool checks email address format
type EmailValidatorTool struct{}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func (t *EmailValidatorTool) Name() string { return "validate_email" }

func (t *EmailValidatorTool) Description() string {
	return "Validate that a string looks like an email address."
}

func (t *EmailValidatorTool) Parameters() map[string]interfaces.ParameterSpec {
	return map[string]interfaces.ParameterSpec{
		"email": {
			Type:        "string",
			Description: "Email address to validate",
			Required:    true,
		},
	}
}

func (t *EmailValidatorTool) Execute(_ context.Context, args string) (string, error) {
	var in struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal([]byte(args), &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	valid := emailPattern.MatchString(in.Email)
	message := "Valid email format"
	if !valid {
		message = "Invalid email format"
	}
	return encode(map[string]interface{}{
		"email":    in.Email,
		"is_valid": valid,
		"message":  message,
	})
}

// TemperatureTool converts temperatures between Celsius, Fahrenheit and Kelvin
type TemperatureTool struct{}

func (t *TemperatureTool) Name() string { return "convert_temperature" }

func (t *TemperatureTool) Description() string {
	return "Convert a temperature between Celsius (C), Fahrenheit (F) and Kelvin (K)."
}

func (t *TemperatureTool) Parameters() map[string]interfaces.ParameterSpec {
	return map[string]interfaces.ParameterSpec{
		"temperature": {
			Type:        "number",
			Description: "Temperature value to convert",
			Required:    true,
		},
		"from_unit": {
			Type:        "string",
			Description: "Source unit",
			Required:    true,
			Enum:        []interface{}{"C", "F", "K"},
		},
		"to_unit": {
			Type:        "string",
			Description: "Target unit",
			Required:    true,
			Enum:        []interface{}{"C", "F", "K"},
		},
	}
}

func (t *TemperatureTool) Execute(_ context.Context, args string) (string, error) {
	var in struct {
		Temperature float64 `json:"temperature"`
		FromUnit    string  `json:"from_unit"`
		ToUnit      string  `json:"to_unit"`
	}
	if err := json.Unmarshal([]byte(args), &in); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}

	converted, err := ConvertTemperature(in.Temperature, in.FromUnit, in.ToUnit)
	if err != nil {
		return "", err
	}
	return encode(map[string]interface{}{
		"original_temperature":  in.Temperature,
		"original_unit":         strings.ToUpper(in.FromUnit),
		"converted_temperature": round2(converted),
		"converted_unit":        strings.ToUpper(in.ToUnit),
	})
}

// ConvertTemperature converts via Celsius as the pivot unit
func ConvertTemperature(value float64, fromUnit, toUnit string) (float64, error) {
	var celsius float64
	switch strings.ToUpper(fromUnit) {
	case "C":
		celsius = value
	case "F":
		celsius = (value - 32) * 5 / 9
	case "K":
		celsius = value - 273.15
	default:
		return 0, fmt.Errorf("unknown source unit: %s", fromUnit)
	}

	switch strings.ToUpper(toUnit) {
	case "C":
		return celsius, nil
	case "F":
		return celsius*9/5 + 32, nil
	case "K":
		return celsius + 273.15, nil
	default:
		return 0, fmt.Errorf("unknown target unit: %s", toUnit)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func encode(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}

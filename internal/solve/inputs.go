package solve

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// InputType mirrors the kinds of controls a definition exposes.
type InputType string

const (
	Number   InputType = "number"
	Range    InputType = "range"
	Checkbox InputType = "checkbox"
)

// Input is a single user-editable parameter of the definition.
type Input struct {
	ID      string    `yaml:"id"`
	Type    InputType `yaml:"type"`
	Min     float64   `yaml:"min"`
	Max     float64   `yaml:"max"`
	Step    float64   `yaml:"step"`
	Value   float64   `yaml:"value"`
	Checked bool      `yaml:"checked"`
}

// Inputs are the definition parameters, in the order used to build result file names.
type Inputs []Input

// String formats the current value the same way it appears in file names.
func (in Input) String() string {
	if in.Type == Checkbox {
		return strconv.FormatBool(in.Checked)
	}
	return formatNumber(in.Value)
}

// formatNumber writes the shortest representation of f that parses back to it, switching to exponent notation
// below 1e-6 and from 1e21 on (1e-7, 1.5e+21), which is how the result files of the server are named.
func formatNumber(f float64) string {
	switch {
	case f == 0:
		return "0" // Also for -0
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	mantissa, expStr, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e") // "1.5e+21", "1e-07"
	exp, _ := strconv.Atoi(expStr)
	if exp >= -6 && exp < 21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if exp < 0 {
		return mantissa + "e-" + strconv.Itoa(-exp)
	}
	return mantissa + "e+" + strconv.Itoa(exp)
}

// Nudge moves a numeric input by n steps (clamped to its range), or toggles a checkbox for any odd n.
// It returns whether the value changed.
func (in *Input) Nudge(n int) bool {
	if in.Type == Checkbox {
		if n%2 != 0 {
			in.Checked = !in.Checked
			return true
		}
		return false
	}
	step := in.Step
	if step <= 0 {
		step = 1
	}
	newValue := in.Value + float64(n)*step
	if in.Min < in.Max {
		newValue = math.Max(in.Min, math.Min(in.Max, newValue))
	}
	// Avoid accumulating binary rounding errors (0.1 + 0.2 should still be named "0.3")
	newValue, _ = strconv.ParseFloat(strconv.FormatFloat(newValue, 'g', 12, 64), 64)
	if newValue == in.Value {
		return false
	}
	in.Value = newValue
	return true
}

// Filename is the name of the precomputed result for the current values: all values joined by '_', plus ".gh".
func (ins Inputs) Filename() string {
	values := make([]string, len(ins))
	for i, in := range ins {
		values[i] = in.String()
	}
	return strings.Join(values, "_") + ".gh"
}

// Validate checks that the inputs are usable to build file names.
func (ins Inputs) Validate() error {
	seen := map[string]bool{}
	for i, in := range ins {
		if in.ID == "" {
			return fmt.Errorf("input %d: missing id", i)
		}
		if seen[in.ID] {
			return fmt.Errorf("input %q: duplicated id", in.ID)
		}
		seen[in.ID] = true
		switch in.Type {
		case Number, Range, Checkbox:
		default:
			return fmt.Errorf("input %q: unknown type %q", in.ID, in.Type)
		}
		if in.Type == Range && !(in.Min < in.Max) {
			return fmt.Errorf("input %q: range needs min < max", in.ID)
		}
	}
	return nil
}

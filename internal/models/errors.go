package models

import "fmt"

// ConfigurationError reports a required setting that is missing or invalid.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("configuration error: %s is not set", e.Setting)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Setting, e.Reason)
}

// OutOfRangeError reports an operator choice outside the allowed range.
type OutOfRangeError struct {
	Input int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("selection %d is out of range [%d, %d]", e.Input, e.Min, e.Max)
}

// InvalidInputError reports unusable input, from the operator or from an empty result set.
type InvalidInputError struct {
	Input  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Input == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid input %q: %s", e.Input, e.Reason)
}

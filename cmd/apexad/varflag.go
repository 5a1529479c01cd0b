package main

import (
	"fmt"
	"strconv"
	"strings"
)

// varBinding is a repeatable `--var name=value` flag; pflag.Value lets
// cobra accumulate one entry per occurrence instead of overwriting a
// single string.
type varBinding struct {
	Name  string
	Value float64
}

type varBindingList struct {
	bindings *[]varBinding
}

func newVarBindingList(bindings *[]varBinding) *varBindingList {
	return &varBindingList{bindings: bindings}
}

func (v *varBindingList) String() string {
	parts := make([]string, len(*v.bindings))
	for i, b := range *v.bindings {
		parts[i] = fmt.Sprintf("%s=%g", b.Name, b.Value)
	}
	return strings.Join(parts, ",")
}

func (v *varBindingList) Set(raw string) error {
	name, valueText, ok := strings.Cut(raw, "=")
	if !ok {
		return fmt.Errorf("expected name=value, got %q", raw)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("empty variable name in %q", raw)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueText), 64)
	if err != nil {
		return fmt.Errorf("parsing value in %q: %w", raw, err)
	}
	*v.bindings = append(*v.bindings, varBinding{Name: name, Value: value})
	return nil
}

func (v *varBindingList) Type() string { return "name=value" }

func varNames(bindings []varBinding) []string {
	names := make([]string, len(bindings))
	for i, b := range bindings {
		names[i] = b.Name
	}
	return names
}

func varValues(bindings []varBinding) []float64 {
	values := make([]float64, len(bindings))
	for i, b := range bindings {
		values[i] = b.Value
	}
	return values
}

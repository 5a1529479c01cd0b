package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/apexgrad/autodiff/internal/autodiff"
	"github.com/apexgrad/autodiff/internal/diag"
	"github.com/apexgrad/autodiff/internal/lexer"
	"github.com/apexgrad/autodiff/internal/parser"
	"github.com/apexgrad/autodiff/internal/printer"
)

func evalCmd() *cobra.Command {
	var bindings []varBinding
	var explain bool

	cmd := &cobra.Command{
		Use:   "eval <formula>",
		Short: "evaluate a formula's value and gradient at a point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(args[0], bindings, explain)
		},
	}
	cmd.Flags().Var(newVarBindingList(&bindings), "var", "bind a variable, name=value (repeatable)")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the tape before evaluating")
	return cmd
}

func runEval(formula string, bindings []varBinding, explain bool) error {
	tz, err := lexer.Tokenize(formula)
	if err != nil {
		return errors.New(diag.Render(formula, tz, err))
	}
	slog.Debug("tokenized", "tokens", len(tz.Tokens))

	root, err := parser.ParseTokens(tz)
	if err != nil {
		return errors.New(diag.Render(formula, tz, err))
	}
	slog.Debug("parsed")

	names := varNames(bindings)
	if len(names) == 0 {
		names = autodiff.CollectVariables(root)
		slog.Debug("auto-detected variables", "names", names)
	}

	tape, err := autodiff.Build(root, names)
	if err != nil {
		return errors.New(diag.Render(formula, tz, err))
	}
	slog.Debug("built tape", "slots", tape.Len())

	if explain {
		if err := printer.PrintTape(os.Stdout, tape); err != nil {
			return err
		}
	}

	values := varValues(bindings)
	if len(values) == 0 {
		values = make([]float64, len(names))
	}
	value, grad, err := tape.Evaluate(values)
	if err != nil {
		return err
	}

	fmt.Printf("value = %g\n", value)
	for i, name := range names {
		fmt.Printf("d/d%s = %g\n", name, grad[i])
	}
	return nil
}

package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/apexgrad/autodiff/internal/autodiff"
	"github.com/apexgrad/autodiff/internal/diag"
	"github.com/apexgrad/autodiff/internal/lexer"
	"github.com/apexgrad/autodiff/internal/parser"
	"github.com/apexgrad/autodiff/internal/printer"
)

func parseCmd() *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "parse <formula>",
		Short: "parse a formula and print the tape it lowers to, without evaluating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args[0], tree)
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "print the output expression's tree form instead of the flat tape")
	return cmd
}

func runParse(formula string, tree bool) error {
	tz, err := lexer.Tokenize(formula)
	if err != nil {
		return errors.New(diag.Render(formula, tz, err))
	}

	root, err := parser.ParseTokens(tz)
	if err != nil {
		return errors.New(diag.Render(formula, tz, err))
	}

	names := autodiff.CollectVariables(root)
	tape, err := autodiff.Build(root, names)
	if err != nil {
		return errors.New(diag.Render(formula, tz, err))
	}

	if tree {
		return printer.PrintExpr(os.Stdout, tape.Items[tape.Output].Value)
	}
	return printer.PrintTape(os.Stdout, tape)
}

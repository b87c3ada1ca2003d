// Package calc implements the integer arithmetic engine: tokenizer,
// normalizer, operator-precedence parser and tree evaluator.
//
// Every stage returns explicit errors of type *Error; the first failure aborts
// the pipeline. The package keeps no mutable state, so all functions are safe
// for concurrent use.
package calc

import (
	"github.com/codefionn/rechenschnell/internal/logger"
)

// Compile runs the tokenizer, normalizer and parser and returns the tree
func Compile(input string) (Node, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		logger.Debug("calc: tokenize %q failed: %v", input, err)
		return nil, err
	}

	tree, err := Parse(Normalize(tokens))
	if err != nil {
		logger.Debug("calc: parse %q failed: %v", input, err)
		return nil, err
	}

	return tree, nil
}

// Evaluate turns an input string into its integer value
func Evaluate(input string) (int64, error) {
	tree, err := Compile(input)
	if err != nil {
		return 0, err
	}

	result, err := Eval(tree)
	if err != nil {
		logger.Debug("calc: eval %s failed: %v", tree, err)
		return 0, err
	}

	return result, nil
}

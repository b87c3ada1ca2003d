package web

import (
	"errors"
	"fmt"

	"github.com/codefionn/rechenschnell/internal/calc"
	"github.com/codefionn/rechenschnell/internal/consts"
)

// ErrInputTooLong is reported for expressions longer than consts.MaxInputLength
var ErrInputTooLong = fmt.Errorf("input exceeds %d characters", consts.MaxInputLength)

// EvaluateRequest is the body of POST /api/evaluate
type EvaluateRequest struct {
	Input string `json:"input"`
}

// EvaluateResponse is returned by POST /api/evaluate and sent for every
// websocket frame. Either Result or Error is set.
type EvaluateResponse struct {
	Input  string `json:"input"`
	Result *int64 `json:"result,omitempty"`
	Tree   string `json:"tree,omitempty"`
	Error  string `json:"error,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Stage  string `json:"stage,omitempty"`
}

// Failed reports whether the response carries an error
func (r *EvaluateResponse) Failed() bool {
	return r.Error != ""
}

// evaluate compiles and evaluates input into a response
func evaluate(input string) *EvaluateResponse {
	resp := &EvaluateResponse{Input: input}
	if len([]rune(input)) > consts.MaxInputLength {
		resp.Error = ErrInputTooLong.Error()
		return resp
	}

	tree, err := calc.Compile(input)
	if err != nil {
		resp.setError(err)
		return resp
	}
	resp.Tree = tree.String()

	result, err := calc.Eval(tree)
	if err != nil {
		resp.setError(err)
		return resp
	}
	resp.Result = &result
	return resp
}

func (r *EvaluateResponse) setError(err error) {
	r.Error = err.Error()

	var calcErr *calc.Error
	if errors.As(err, &calcErr) {
		r.Kind = calcErr.Kind.String()
		r.Stage = calcErr.Kind.Stage().String()
	}
}

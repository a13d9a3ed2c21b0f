package server

// EvaluateRequest is the request body for evaluating one expression.
type EvaluateRequest struct {
	Expression string `json:"expression" example:"2025/09/27 + 2d" validate:"required"`
}

// EvaluateResponse carries a rendered value.
type EvaluateResponse struct {
	Expression string `json:"expression" example:"2025/09/27 + 2d"`
	Result     string `json:"result" example:"2025-09-29"`
	Type       string `json:"type" example:"Date"`
}

// ErrorResponse is returned for every non-2xx answer. Stage is "parse" or
// "evaluate" when the expression itself was rejected.
type ErrorResponse struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
}

// SheetRequest is the request body for evaluating a scratchpad.
type SheetRequest struct {
	Lines []string `json:"lines" validate:"required,min=1,max=1000"`
}

// SheetLine is the outcome of one scratchpad line. Blank and comment lines
// have an empty Result.
type SheetLine struct {
	Result string `json:"result"`
	Error  bool   `json:"error,omitempty"`
}

// SheetResponse wraps per-line results in input order.
type SheetResponse struct {
	Results []SheetLine `json:"results"`
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"tcalc/app/lang"
)

const maxBodyBytes = 1 << 20

// Handler serves the evaluation endpoints.
type Handler struct {
	eval     *lang.Evaluator
	validate *validator.Validate
	exprRule string
}

// NewHandler returns a handler evaluating with eval. Expressions longer than
// maxLen bytes are rejected before parsing.
func NewHandler(eval *lang.Evaluator, maxLen int) *Handler {
	return &Handler{
		eval:     eval,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		exprRule: fmt.Sprintf("max=%d", maxLen),
	}
}

// Evaluate handles POST /api/evaluate.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body", ""))
		return
	}
	h.evaluate(w, req)
}

// EvaluateQuery handles GET /api/evaluate?expression=...
func (h *Handler) EvaluateQuery(w http.ResponseWriter, r *http.Request) {
	h.evaluate(w, EvaluateRequest{Expression: r.URL.Query().Get("expression")})
}

func (h *Handler) evaluate(w http.ResponseWriter, req EvaluateRequest) {
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("expression is required", ""))
		return
	}
	if err := h.validate.Var(req.Expression, h.exprRule); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("expression is too long", ""))
		return
	}

	val, err := h.eval.EvalLine(req.Expression)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error(), lang.Stage(err)))
		return
	}
	writeJSON(w, http.StatusOK, EvaluateResponse{
		Expression: req.Expression,
		Result:     val.String(),
		Type:       val.TypeName(),
	})
}

// Sheet handles POST /api/sheet. Each request gets a fresh sheet; nothing
// is cached between requests.
func (h *Handler) Sheet(w http.ResponseWriter, r *http.Request) {
	var req SheetRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body", ""))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("invalid sheet: %v", err), ""))
		return
	}
	for i, line := range req.Lines {
		if err := h.validate.Var(line, h.exprRule); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("line %d is too long", i+1), ""))
			return
		}
	}

	results := lang.NewSheet(h.eval).EvalAll(req.Lines, false)
	resp := SheetResponse{Results: make([]SheetLine, len(results))}
	for i, res := range results {
		resp.Results[i] = SheetLine{Result: res.Text, Error: res.IsErr}
	}
	writeJSON(w, http.StatusOK, resp)
}

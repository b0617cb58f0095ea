package api

import (
	"context"
	"net/http"
)

// RulesDependencies lists the engine's rules.
type RulesDependencies interface {
	RuleNames(ctx context.Context) []string
}

// RulesHandler serves the rule table in evaluation order.
type RulesHandler struct {
	deps RulesDependencies
}

// NewRulesHandler creates a new rules handler.
func NewRulesHandler(deps RulesDependencies) *RulesHandler {
	return &RulesHandler{deps: deps}
}

type rulesResponse struct {
	Count int      `json:"count"`
	Rules []string `json:"rules"`
}

// HandleRules handles GET /api/rules requests.
func (h *RulesHandler) HandleRules(w http.ResponseWriter, r *http.Request) {
	names := h.deps.RuleNames(r.Context())
	writeJSON(w, http.StatusOK, rulesResponse{Count: len(names), Rules: names})
}

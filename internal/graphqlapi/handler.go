package graphqlapi

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"atrium.org/internal/obs"
)

type graphqlRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// GraphQL executes one operation. The request context already carries the
// viewer principal (or none); execution itself never performs identity work.
func (a *API) GraphQL(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	switch r.Method {
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
	case http.MethodGet:
		req.Query = r.URL.Query().Get("query")
		req.OperationName = r.URL.Query().Get("operationName")
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if req.Query == "" {
		writeError(w, r, http.StatusBadRequest, "query is required")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         a.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	status := "ok"
	if len(result.Errors) > 0 {
		status = "error"
	}
	obs.ObserveGraphQLOperation(req.OperationName, status)

	// Field-level failures produce a partial result, not an HTTP error:
	// the transport succeeds, errors travel in the response body.
	writeJSON(w, http.StatusOK, result)
}

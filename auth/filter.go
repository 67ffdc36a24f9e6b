package auth

import (
	"net/http"

	restful "github.com/emicklei/go-restful/v3"
)

// Request attribute keys set by SessionFilter.
const (
	TokenAttribute    = "session_token"
	IdentityAttribute = "session_identity"
)

// SessionFilter creates a go-restful FilterFunction that resolves the session
// cookie against the store. Requests without a live session are rejected with
// 401 before the handler runs.
func SessionFilter(store SessionStore) restful.FilterFunction {
	return func(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
		token, ok := ReadSessionCookie(req.Request)
		if !ok {
			_ = resp.WriteHeaderAndJson(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"}, restful.MIME_JSON)
			return
		}

		identity, ok := store.Load(token)
		if !ok {
			_ = resp.WriteHeaderAndJson(http.StatusUnauthorized, map[string]string{"error": "Not authenticated"}, restful.MIME_JSON)
			return
		}

		// Store the session for use by subsequent processing functions
		req.SetAttribute(TokenAttribute, token)
		req.SetAttribute(IdentityAttribute, identity)

		chain.ProcessFilter(req, resp)
	}
}

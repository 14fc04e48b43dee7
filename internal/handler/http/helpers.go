package http

import (
	"net/http"
	"strconv"

	"github.com/wasabi-works/shift-payroll-backend/internal/domain/auth"
	"github.com/wasabi-works/shift-payroll-backend/internal/handler/http/middleware"
)

// getClaims returns the identity placed in the context by middleware.AuthRequired.
func getClaims(r *http.Request) (auth.Claims, bool) {
	return middleware.ClaimsFromContext(r.Context())
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"roofing_crm/internal/adapter/http/middleware"
	"roofing_crm/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	adminActor = entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}
	repActor   = entities.Actor{ID: "rep-1", Role: entities.RoleRep}
)

// newRouter returns a test engine that authenticates every request as actor.
// A zero actor leaves the request unauthenticated.
func newRouter(actor entities.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if actor.ID != "" {
		r.Use(func(c *gin.Context) { middleware.SetActor(c, actor) })
	}
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

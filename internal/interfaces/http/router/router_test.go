package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()

	lots := NewDomainGroup("lots", "/lots")
	lots.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"items": []string{}})
	})

	NewRouter(engine).Register(lots).Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lots", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDomainGroupMethods(t *testing.T) {
	engine := gin.New()

	tasks := NewDomainGroup("tasks", "/tasks")
	tasks.
		GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "get "+c.Param("id")) }).
		POST("/:id/assign", func(c *gin.Context) { c.String(http.StatusOK, "assign") }).
		PUT("/:id", func(c *gin.Context) { c.String(http.StatusOK, "put") })

	NewRouter(engine).Register(tasks).Setup()

	cases := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/tasks/42", "get 42"},
		{http.MethodPost, "/api/v1/tasks/42/assign", "assign"},
		{http.MethodPut, "/api/v1/tasks/42", "put"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tc.want, w.Body.String())
	}
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()

	called := false
	lots := NewDomainGroup("lots", "/lots")
	lots.Use(func(c *gin.Context) {
		called = true
		c.Next()
	})
	lots.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	NewRouter(engine).Register(lots).Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/lots", nil)
	engine.ServeHTTP(w, req)

	assert.True(t, called)
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()

	lots := NewDomainGroup("lots", "/lots")
	lots.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	production := NewDomainGroup("production", "/production")
	production.GET("/records", func(c *gin.Context) { c.Status(http.StatusOK) })

	NewRouter(engine).Register(lots).Register(production).Setup()

	for _, path := range []string{"/api/v1/lots", "/api/v1/production/records"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestDomainGroupAccessors(t *testing.T) {
	dg := NewDomainGroup("suggestions", "/suggestions")

	assert.Equal(t, "suggestions", dg.Name())
	assert.Equal(t, "/suggestions", dg.Prefix())
}

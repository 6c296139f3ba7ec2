package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brownie44l1/webserver/internal/request"
	"github.com/Brownie44l1/webserver/internal/response"
	"github.com/Brownie44l1/webserver/internal/server"
)

func decode(t *testing.T, line string) *request.Request {
	t.Helper()
	req, err := request.Decode([]byte(line + "\r\n"))
	require.NoError(t, err)
	return req
}

func TestStaticRoutes(t *testing.T) {
	r := New()
	r.GET("/", func(req *request.Request, p Params) *response.Response { return response.Text("home") })
	r.POST("/", func(req *request.Request, p Params) *response.Response { return response.Text("posted") })

	assert.Equal(t, "home", r.HandleRequest(decode(t, "GET / HTTP/1.1")).Body())
	assert.Equal(t, "posted", r.HandleRequest(decode(t, "POST / HTTP/1.1")).Body())

	resp := r.HandleRequest(decode(t, "PUT / HTTP/1.1"))
	assert.Equal(t, response.StatusNotFound, resp.StatusCode())
	assert.Empty(t, resp.Body())
}

func TestParamRoutes(t *testing.T) {
	r := New()
	r.GET("/users/:id/posts/:postId", func(req *request.Request, p Params) *response.Response {
		return response.Text(p["id"] + ":" + p["postId"])
	})

	resp := r.HandleRequest(decode(t, "GET /users/42/posts/7?full=1 HTTP/1.1"))
	assert.Equal(t, "42:7", resp.Body())

	route, _ := r.Match(request.MethodGet, "/users/42")
	assert.Nil(t, route)

	route, params := r.Match(request.MethodGet, "/users/42/posts/7")
	require.NotNil(t, route)
	assert.Equal(t, "/users/:id/posts/:postId", route.Path)
	assert.Equal(t, Params{"id": "42", "postId": "7"}, params)
}

func TestWildcardRoutes(t *testing.T) {
	r := New()
	r.GET("/static/*", func(req *request.Request, p Params) *response.Response {
		return response.Text(p["*"])
	})

	assert.Equal(t, "css/site.css", r.HandleRequest(decode(t, "GET /static/css/site.css HTTP/1.1")).Body())
	assert.Equal(t, "", r.HandleRequest(decode(t, "GET /static/ HTTP/1.1")).Body())
	assert.Equal(t, response.StatusNotFound, r.HandleRequest(decode(t, "GET /static HTTP/1.1")).StatusCode())
}

func TestFirstMatchWins(t *testing.T) {
	r := New()
	r.GET("/hello", func(req *request.Request, p Params) *response.Response { return response.Text("exact") })
	r.GET("/*", func(req *request.Request, p Params) *response.Response { return response.Text("any " + p["*"]) })

	assert.Equal(t, "exact", r.HandleRequest(decode(t, "GET /hello HTTP/1.1")).Body())
	assert.Equal(t, "any other", r.HandleRequest(decode(t, "GET /other HTTP/1.1")).Body())
}

func TestCustomNotFound(t *testing.T) {
	r := New()
	r.NotFound(server.HandlerFunc(func(req *request.Request) *response.Response {
		return response.Errorf(response.StatusNotFound, "no route for %s", req.Path())
	}))

	resp := r.HandleRequest(decode(t, "DELETE /missing HTTP/1.1"))
	assert.Equal(t, response.StatusNotFound, resp.StatusCode())
	assert.Equal(t, "Error 404: no route for /missing\n", resp.Body())
}

func TestMethodShortcuts(t *testing.T) {
	r := New()
	ok := func(req *request.Request, p Params) *response.Response { return response.Text(req.Method().String()) }
	r.PUT("/x", ok)
	r.DELETE("/x", ok)
	r.PATCH("/x", ok)

	for _, m := range []string{"PUT", "DELETE", "PATCH"} {
		assert.Equal(t, m, r.HandleRequest(decode(t, m+" /x HTTP/1.1")).Body())
	}
}

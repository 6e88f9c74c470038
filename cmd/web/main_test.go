package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLandingHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	landingHandler("play.example.org")(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "ssh -p 2222 play.example.org")
	assert.NotContains(t, rec.Body.String(), "{{.SSHHost}}")
}

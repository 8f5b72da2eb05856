package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestParseIntQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"present", "limit=25", 25},
		{"missing uses default", "other=1", 10},
		{"non-numeric uses default", "limit=abc", 10},
		{"negative passes through", "limit=-5", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := queryContext(t, tt.query)
			assert.Equal(t, tt.expected, ParseIntQuery(c, "limit", 10))
		})
	}
}

func TestParseBoolQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected bool
	}{
		{"true", "flag=true", true},
		{"one", "flag=1", true},
		{"false", "flag=false", false},
		{"missing uses default", "other=1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := queryContext(t, tt.query)
			assert.Equal(t, tt.expected, ParseBoolQuery(c, "flag", false))
		})
	}
}

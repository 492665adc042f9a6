//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertHeaders compares exact values; an empty expected value only requires presence.
func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for name, want := range expected {
		got := w.Header().Get(name)
		if want == "" {
			assert.NotEmpty(t, got, "header %s missing", name)
			continue
		}
		assert.Equal(t, want, got, "header %s mismatch", name)
	}
}

package checkout

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteCheckoutErrorShapes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantKey  string
	}{
		{"validation", &ValidationError{Field: "phone", Reason: "phone is required"}, http.StatusUnprocessableEntity, "field"},
		{"submission", &SubmissionError{Err: fmt.Errorf("mongo down")}, http.StatusBadGateway, "retryable"},
		{"generic", fmt.Errorf("identity already collected"), http.StatusBadRequest, "error"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		writeCheckoutError(w, tc.err)

		if w.Code != tc.wantCode {
			t.Errorf("%s: got status %d, want %d", tc.name, w.Code, tc.wantCode)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Errorf("%s: body is not JSON: %v", tc.name, err)
			continue
		}
		if _, ok := body[tc.wantKey]; !ok {
			t.Errorf("%s: body %v missing %q", tc.name, body, tc.wantKey)
		}
	}
}

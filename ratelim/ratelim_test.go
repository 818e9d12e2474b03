package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

func hit(h httprouter.Handle, ip string) int {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = ip
	w := httptest.NewRecorder()
	h(w, r, nil)
	return w.Code
}

func TestLimitEnforcesBurst(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 2)

	calls := 0
	h := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	if code := hit(h, "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("first request: got %d", code)
	}
	if code := hit(h, "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("second request: got %d", code)
	}
	if code := hit(h, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("third request: got %d, want 429", code)
	}
	if calls != 2 {
		t.Fatalf("handler ran %d times, want 2", calls)
	}
}

func TestLimitIsPerIP(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Hour), 1)

	h := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	if code := hit(h, "10.0.0.1:1234"); code != http.StatusOK {
		t.Fatalf("first IP: got %d", code)
	}
	if code := hit(h, "10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("first IP repeat: got %d, want 429", code)
	}
	if code := hit(h, "10.0.0.2:1234"); code != http.StatusOK {
		t.Fatalf("second IP: got %d, want 200", code)
	}
}

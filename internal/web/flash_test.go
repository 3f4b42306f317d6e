package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	// Set the flash on one response.
	rec := httptest.NewRecorder()
	SetFlash(rec, "Item added.")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	// Carry it into the next request and pop it.
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()

	if got := PopFlash(rec2, req); got != "Item added." {
		t.Errorf("PopFlash = %q, want %q", got, "Item added.")
	}

	// Popping clears the cookie so the message shows exactly once.
	var cleared bool
	for _, c := range rec2.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected flash cookie to be cleared on read")
	}
}

func TestPopFlashEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	rec := httptest.NewRecorder()

	if got := PopFlash(rec, req); got != "" {
		t.Errorf("expected empty flash, got %q", got)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no cookie should be written when nothing is pending")
	}
}

func TestFlashSurvivesSpecialCharacters(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, `A category with this name already exists.`)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	if got := PopFlash(httptest.NewRecorder(), req); got != "A category with this name already exists." {
		t.Errorf("unexpected flash %q", got)
	}
}

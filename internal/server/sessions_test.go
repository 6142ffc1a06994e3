package server

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

var userIDPattern = regexp.MustCompile(`^user_\d{4}$`)

func sessionRequest(cookies ...*http.Cookie) (*httptest.ResponseRecorder, *http.Request) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return w, r
}

func issuedCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestUserIDStableAcrossRequests(t *testing.T) {
	store := newSessionStore(nil, "secret")

	w, r := sessionRequest()
	first := store.UserID(w, r)
	if !userIDPattern.MatchString(first) {
		t.Fatalf("unexpected user id %q", first)
	}
	cookie := issuedCookie(t, w)

	w2, r2 := sessionRequest(cookie)
	if again := store.UserID(w2, r2); again != first {
		t.Fatalf("user id changed across requests: %q then %q", first, again)
	}
}

func TestAccessorsShareSessionWithinRequest(t *testing.T) {
	store := newSessionStore(nil, "secret")

	// a first-time visitor's request carries no cookie; every accessor call
	// on that request must land on the same session
	w, r := sessionRequest()
	first := store.UserID(w, r)
	store.SetNickname(w, r, "Ada")
	if got := store.Nickname(w, r); got != "Ada" {
		t.Fatalf("nickname lost across calls, got %q", got)
	}
	if again := store.UserID(w, r); again != first {
		t.Fatalf("user id changed within one request: %q then %q", first, again)
	}

	issued := 0
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			issued++
		}
	}
	if issued != 1 {
		t.Fatalf("expected exactly one session cookie, got %d", issued)
	}

	// and the browser's stored cookie resolves to that same session
	w2, r2 := sessionRequest(issuedCookie(t, w))
	if got := store.UserID(w2, r2); got != first {
		t.Fatalf("follow-up request lost the session: %q then %q", first, got)
	}
	if got := store.Nickname(w2, r2); got != "Ada" {
		t.Fatalf("follow-up request lost the nickname, got %q", got)
	}
}

func TestTamperedCookieSharedWithinRequest(t *testing.T) {
	store := newSessionStore(nil, "secret")

	w, r := sessionRequest(&http.Cookie{Name: sessionCookie, Value: "forged.deadbeef"})
	first := store.UserID(w, r)
	if again := store.UserID(w, r); again != first {
		t.Fatalf("replacement session not reused within the request: %q then %q", first, again)
	}
	issued := 0
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			issued++
		}
	}
	if issued != 1 {
		t.Fatalf("expected exactly one replacement cookie, got %d", issued)
	}
}

func TestTamperedCookieGetsFreshSession(t *testing.T) {
	store := newSessionStore(nil, "secret")

	w, r := sessionRequest()
	store.UserID(w, r)
	cookie := issuedCookie(t, w)
	original := cookie.Value
	cookie.Value = "forged." + original[len(original)-64:]

	w2, r2 := sessionRequest(cookie)
	store.UserID(w2, r2)
	fresh := issuedCookie(t, w2)
	if fresh.Value == original || fresh.Value == cookie.Value {
		t.Fatal("forged cookie must be replaced with a fresh session")
	}
}

func TestUnsignedCookiesWithoutSecret(t *testing.T) {
	store := newSessionStore(nil, "")

	w, r := sessionRequest()
	first := store.UserID(w, r)
	cookie := issuedCookie(t, w)
	if regexp.MustCompile(`\.`).MatchString(cookie.Value) {
		t.Fatalf("expected an unsigned cookie, got %q", cookie.Value)
	}

	w2, r2 := sessionRequest(cookie)
	if again := store.UserID(w2, r2); again != first {
		t.Fatal("session must survive without a signing secret")
	}
}

func TestNicknameRoundTrip(t *testing.T) {
	store := newSessionStore(nil, "secret")

	w, r := sessionRequest()
	store.SetNickname(w, r, "Ada")
	cookie := issuedCookie(t, w)

	w2, r2 := sessionRequest(cookie)
	if got := store.Nickname(w2, r2); got != "Ada" {
		t.Fatalf("expected nickname Ada, got %q", got)
	}

	// blank writes are ignored
	w3, r3 := sessionRequest(cookie)
	store.SetNickname(w3, r3, "   ")
	w4, r4 := sessionRequest(cookie)
	if got := store.Nickname(w4, r4); got != "Ada" {
		t.Fatalf("blank nickname must not overwrite, got %q", got)
	}
}

func TestFlashPopsOnce(t *testing.T) {
	store := newSessionStore(nil, "secret")

	w, r := sessionRequest()
	store.SetFlash(w, r, "Error: Room code not found.")
	cookie := issuedCookie(t, w)

	w2, r2 := sessionRequest(cookie)
	if got := store.PopFlash(w2, r2); got != "Error: Room code not found." {
		t.Fatalf("expected the flash back, got %q", got)
	}
	w3, r3 := sessionRequest(cookie)
	if got := store.PopFlash(w3, r3); got != "" {
		t.Fatalf("flash must pop once, got %q", got)
	}
}

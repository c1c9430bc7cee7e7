package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	api "github.com/rogerio-castellano/order-insights/internal/http"
	handler "github.com/rogerio-castellano/order-insights/internal/http/handlers"
)

func postJSON(r http.Handler, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterHandler_Valid(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := postJSON(r, "/register", handler.CredentialsRequest{Username: "alice", Password: "supersecret"})

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token in the register response")
	}
}

func TestRegisterHandler_ShortCredentials(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"short username", "ab", "supersecret"},
		{"short password", "bob", "123"},
		{"missing password", "bob", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(r, "/register", handler.CredentialsRequest{Username: tt.username, Password: tt.password})
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 Bad Request, got %d", w.Code)
			}
		})
	}
}

func TestRegisterHandler_Duplicate(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	first := postJSON(r, "/register", handler.CredentialsRequest{Username: "carol", Password: "supersecret"})
	if first.Code != http.StatusCreated {
		t.Fatalf("first registration failed: %d", first.Code)
	}

	second := postJSON(r, "/register", handler.CredentialsRequest{Username: "carol", Password: "supersecret"})
	if second.Code != http.StatusConflict {
		t.Errorf("expected 409 Conflict, got %d", second.Code)
	}
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := postJSON(r, "/login", handler.CredentialsRequest{Username: "admin", Password: "wrong"})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestLoginHandler_UnknownUser(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	w := postJSON(r, "/login", handler.CredentialsRequest{Username: "nobody", Password: "whatever"})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", w.Code)
	}
}

func TestLoginHandler_MalformedJSON(t *testing.T) {
	t.Cleanup(clearAll)
	r := api.NewRouter()

	badJSON := `{username: "admin" password: "secret"}`
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(badJSON))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request, got %d", w.Code)
	}
}

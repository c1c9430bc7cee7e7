package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/order-insights/internal/analytics"
	api "github.com/rogerio-castellano/order-insights/internal/http"
	handler "github.com/rogerio-castellano/order-insights/internal/http/handlers"
	rl "github.com/rogerio-castellano/order-insights/internal/http/rate_limiter"
	"github.com/rogerio-castellano/order-insights/internal/models"
	"github.com/rogerio-castellano/order-insights/internal/repo"
)

var (
	adminToken  string
	datasetRepo *repo.InMemoryDatasetRepository
	userRepo    *repo.InMemoryUserRepository
)

func init() {
	setupTestRepos("secret")
	r := api.NewRouter()

	var err error
	adminToken, err = generateToken(r, "admin", "secret")
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos(password string) {
	datasetRepo = repo.NewInMemoryDatasetRepository()
	handler.SetDatasetRepo(datasetRepo)
	handler.SetInsightsRepo(repo.NewInMemoryInsightsRepository(datasetRepo))

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	userRepo.CreateUser(models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	})
}

// clearAll resets dataset rows and the per-IP rate limiter between tests.
func clearAll() {
	datasetRepo.Clear()
	rl.CleanupAllVisitors()
}

func generateToken(r http.Handler, username, password string) (string, error) {
	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	err := json.NewDecoder(w.Body).Decode(&resp)
	if err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getAuthorized(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func importCSV(r http.Handler, dataset, query, csvContent, token string) *httptest.ResponseRecorder {
	body, contentType := multipartCSV(csvContent, dataset+".csv")
	req := httptest.NewRequest(http.MethodPost, "/datasets/"+dataset+"/import"+query, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRecorderFor(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r http.Handler, username, password string) string {
	t.Helper()

	payload := handler.CredentialsRequest{Username: username, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("registering %q failed: %d %s", username, w.Code, w.Body.String())
	}

	var resp handler.RegisterResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding register response: %v", err)
	}
	return resp.Token
}

func day(year int, month time.Month, dayOfMonth int) time.Time {
	return time.Date(year, month, dayOfMonth, 12, 0, 0, 0, time.UTC)
}

// seedDataset loads a small fixture: springfield is the busiest city with
// toys as its dominant category, shelbyville trails with books.
func seedDataset() {
	ds := analytics.NewDataset(
		[]models.Order{
			{ID: "o1", CustomerID: "c1", PurchasedAt: day(2017, time.March, 1)},
			{ID: "o2", CustomerID: "c1", PurchasedAt: day(2017, time.June, 15)},
			{ID: "o3", CustomerID: "c2", PurchasedAt: day(2017, time.June, 20)},
			{ID: "o4", CustomerID: "c3", PurchasedAt: day(2018, time.January, 5)},
		},
		[]models.Customer{
			{ID: "c1", City: "springfield", State: "IL"},
			{ID: "c2", City: "springfield", State: "IL"},
			{ID: "c3", City: "shelbyville", State: "IL"},
		},
		[]models.OrderItem{
			{OrderID: "o1", ProductID: "p-toy"},
			{OrderID: "o1", ProductID: "p-toy"},
			{OrderID: "o2", ProductID: "p-toy"},
			{OrderID: "o3", ProductID: "p-book"},
			{OrderID: "o4", ProductID: "p-book"},
		},
		[]models.Product{
			{ID: "p-toy", CategoryName: "brinquedos"},
			{ID: "p-book", CategoryName: "livros"},
		},
		[]models.CategoryTranslation{
			{Name: "brinquedos", NameEnglish: "toys"},
			{Name: "livros", NameEnglish: "books"},
		},
	)
	datasetRepo.Seed(ds)
}

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/models"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/repository"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/service"
	"github.com/Lixing-Zhang/pantry-tracker/backend/internal/spoonacular"
	"github.com/Lixing-Zhang/pantry-tracker/backend/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// fakeSpoonacular serves n search hits; failSearch makes the search endpoint return 500
func fakeSpoonacular(t *testing.T, n int, failSearch bool) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/recipes/findByIngredients" {
			if failSearch {
				http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
				return
			}
			hits := make([]string, n)
			for i := range hits {
				hits[i] = fmt.Sprintf(`{"id": %d, "title": "Recipe %d", "image": "https://img.example/%d.jpg"}`, i+1, i+1, i+1)
			}
			fmt.Fprintf(w, "[%s]", strings.Join(hits, ","))
			return
		}

		var id int
		if _, err := fmt.Sscanf(r.URL.Path, "/recipes/%d/information", &id); err != nil {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"id": %d, "sourceUrl": "https://recipes.example/%d"}`, id, id)
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testServer struct {
	handler http.Handler
	repo    *repository.InMemoryInventoryRepository
	log     *slog.Logger
}

func newTestServer(t *testing.T, spoon *httptest.Server, seed ...models.InventoryItem) *testServer {
	t.Helper()

	log := logger.New("error")
	repo := repository.NewInMemoryInventoryRepository(seed...)

	baseURL := "http://127.0.0.1:1"
	if spoon != nil {
		baseURL = spoon.URL
	}
	client := spoonacular.NewClient(baseURL, "test-key", 2*time.Second)

	handler := NewRouter(RouterDeps{
		Health:    NewHealthHandler("memory", log),
		Inventory: NewInventoryHandler(service.NewInventoryService(repo, 1, log), validator.New(), log),
		Recipes:   NewRecipeHandler(service.NewRecipeService(client, 10, log), log),
		Logger:    log,
	})

	return &testServer{handler: handler, repo: repo, log: log}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

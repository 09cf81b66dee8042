package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thecae/wilpower/internal/cache"
	"github.com/thecae/wilpower/internal/models"
	"github.com/thecae/wilpower/internal/repository"
)

type stubItemStore struct {
	items        []models.Item
	created      []models.Item
	updatedIDs   []string
	updatedInvs  []string
	deletedNames []string
	deletedIDs   []string
	deleteCount  int64
	findErr      error
	updateErr    error

	listCalls int
}

func (s *stubItemStore) Create(_ context.Context, item *models.Item) error {
	item.ID = primitive.NewObjectID()
	s.created = append(s.created, *item)
	return nil
}

func (s *stubItemStore) FindByInv(_ context.Context, _ string) (*models.Item, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return &s.items[0], nil
}

func (s *stubItemStore) FindAll(_ context.Context) ([]models.Item, error) {
	s.listCalls++
	return s.items, nil
}

func (s *stubItemStore) UpdateByID(_ context.Context, id string, _ *models.ItemInput) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedIDs = append(s.updatedIDs, id)
	return nil
}

func (s *stubItemStore) UpdateByInv(_ context.Context, inv string, _ *models.ItemInput) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedInvs = append(s.updatedInvs, inv)
	return nil
}

func (s *stubItemStore) DeleteByName(_ context.Context, name string) (int64, error) {
	s.deletedNames = append(s.deletedNames, name)
	return s.deleteCount, nil
}

func (s *stubItemStore) DeleteByID(_ context.Context, id string) (int64, error) {
	s.deletedIDs = append(s.deletedIDs, id)
	return s.deleteCount, nil
}

func storeRouter(repo ItemStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewStoreHandler(repo)
	router.GET("/api/store", h.ListItems)
	router.POST("/api/store", h.CreateItem)
	router.PUT("/api/store", h.UpdateItem)
	router.DELETE("/api/store", h.DeleteItem)
	router.GET("/api/store/:item", h.GetItemByInv)
	router.PUT("/api/store/:item", h.UpdateItemByInv)
	router.DELETE("/api/store/:item", h.DeleteItemByName)
	return router
}

func request(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validItemBody = `{
	"name": "Effort T-shirt",
	"inv": "effort-tee",
	"price": 14.99,
	"desc": {"material": "100% cotton", "fit": "Relaxed"},
	"quantity": {"XS": 1, "S": 5, "M": 10, "L": 10, "XL": 5, "2XL": 2}
}`

func TestCreateItemEchoesPayload(t *testing.T) {
	cache.Get().Clear()
	repo := &stubItemStore{}
	router := storeRouter(repo)

	w := request(t, router, http.MethodPost, "/api/store", validItemBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d want 201 (body %s)", w.Code, w.Body)
	}

	var got models.Item
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Name != "Effort T-shirt" || got.Inv != "effort-tee" || got.Price != 14.99 {
		t.Fatalf("response does not echo input: %+v", got)
	}
	want := models.Quantity{XS: 1, S: 5, M: 10, L: 10, XL: 5, XXL: 2}
	if got.Quantity != want {
		t.Fatalf("quantity does not echo input: %+v", got.Quantity)
	}
	if got.ID.IsZero() {
		t.Fatal("created item has no id")
	}
	if len(repo.created) != 1 {
		t.Fatalf("repo received %d creates, want 1", len(repo.created))
	}
}

func TestCreateItemInvalidatesListCache(t *testing.T) {
	cache.Get().Clear()
	cache.Get().Set(storeListKey, []models.Item{})
	router := storeRouter(&stubItemStore{})

	w := request(t, router, http.MethodPost, "/api/store", validItemBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got %d want 201", w.Code)
	}
	if _, found := cache.Get().GetValue(storeListKey); found {
		t.Fatal("listing cache survived a create")
	}
}

func TestListItemsCachedUntilWrite(t *testing.T) {
	cache.Get().Clear()
	repo := &stubItemStore{items: []models.Item{{Name: "Effort T-shirt", Inv: "effort-tee"}}}
	router := storeRouter(repo)

	for i := 0; i < 2; i++ {
		w := request(t, router, http.MethodGet, "/api/store", "")
		if w.Code != http.StatusOK {
			t.Fatalf("list %d: status %d", i, w.Code)
		}
	}
	if repo.listCalls != 1 {
		t.Fatalf("repo queried %d times for cached listing, want 1", repo.listCalls)
	}

	request(t, router, http.MethodPost, "/api/store", validItemBody)
	request(t, router, http.MethodGet, "/api/store", "")
	if repo.listCalls != 2 {
		t.Fatalf("repo queried %d times after write, want 2", repo.listCalls)
	}
}

func TestGetItemByInv(t *testing.T) {
	cache.Get().Clear()
	repo := &stubItemStore{items: []models.Item{{Name: "Effort T-shirt", Inv: "effort-tee", Price: 14.99}}}
	router := storeRouter(repo)

	w := request(t, router, http.MethodGet, "/api/store/effort-tee", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200", w.Code)
	}

	var got models.Item
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Inv != "effort-tee" {
		t.Fatalf("unexpected item: %+v", got)
	}
}

func TestGetItemByInvNotFound(t *testing.T) {
	cache.Get().Clear()
	router := storeRouter(&stubItemStore{findErr: repository.ErrNotFound})

	w := request(t, router, http.MethodGet, "/api/store/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", w.Code)
	}
}

func TestUpdateItemTargetsBodyID(t *testing.T) {
	cache.Get().Clear()
	cache.Get().Set(storeListKey, []models.Item{})
	repo := &stubItemStore{}
	router := storeRouter(repo)

	body := strings.TrimSuffix(validItemBody, "\n}") + `,
	"id": "6123456789abcdef01234567"
}`
	w := request(t, router, http.MethodPut, "/api/store", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200 (body %s)", w.Code, w.Body)
	}
	if len(repo.updatedIDs) != 1 || repo.updatedIDs[0] != "6123456789abcdef01234567" {
		t.Fatalf("updated ids: %v", repo.updatedIDs)
	}
	if _, found := cache.Get().GetValue(storeListKey); found {
		t.Fatal("listing cache survived an update")
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	cache.Get().Clear()
	router := storeRouter(&stubItemStore{updateErr: repository.ErrNotFound})

	body := strings.TrimSuffix(validItemBody, "\n}") + `,
	"id": "6123456789abcdef01234567"
}`
	w := request(t, router, http.MethodPut, "/api/store", body)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d want 404", w.Code)
	}
}

func TestUpdateItemByInvTargetsPath(t *testing.T) {
	cache.Get().Clear()
	repo := &stubItemStore{}
	router := storeRouter(repo)

	w := request(t, router, http.MethodPut, "/api/store/effort-tee", validItemBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200 (body %s)", w.Code, w.Body)
	}
	if len(repo.updatedInvs) != 1 || repo.updatedInvs[0] != "effort-tee" {
		t.Fatalf("updated invs: %v", repo.updatedInvs)
	}
}

func TestDeleteByNameReportsCount(t *testing.T) {
	cache.Get().Clear()
	for _, tc := range []struct {
		count int64
	}{
		{1}, // one matching document removed
		{0}, // a miss is a zero count, not an error
	} {
		repo := &stubItemStore{deleteCount: tc.count}
		router := storeRouter(repo)

		w := request(t, router, http.MethodDelete, "/api/store/effort-tee", `{"name": "Effort T-shirt"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d want 200", w.Code)
		}

		var resp struct {
			DeletedCount int64 `json:"deleted_count"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.DeletedCount != tc.count {
			t.Fatalf("deleted_count: got %d want %d", resp.DeletedCount, tc.count)
		}
		if len(repo.deletedNames) != 1 || repo.deletedNames[0] != "Effort T-shirt" {
			t.Fatalf("deleted names: %v", repo.deletedNames)
		}
	}
}

func TestDeleteByIDReportsCount(t *testing.T) {
	cache.Get().Clear()
	cache.Get().Set(storeListKey, []models.Item{})
	repo := &stubItemStore{deleteCount: 1}
	router := storeRouter(repo)

	w := request(t, router, http.MethodDelete, "/api/store", `{"id": "6123456789abcdef01234567"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d want 200", w.Code)
	}

	var resp struct {
		DeletedCount int64 `json:"deleted_count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.DeletedCount != 1 {
		t.Fatalf("deleted_count: got %d want 1", resp.DeletedCount)
	}
	if _, found := cache.Get().GetValue(storeListKey); found {
		t.Fatal("listing cache survived a delete")
	}
}

func TestCreateItemRejectsInvalidPayload(t *testing.T) {
	repo := &stubItemStore{}
	router := storeRouter(repo)

	cases := []struct {
		name string
		body string
	}{
		{"short name", `{"name": "X", "price": 10, "quantity": {"XS":1,"S":1,"M":1,"L":1,"XL":1,"2XL":1}}`},
		{"zero price", `{"name": "Effort T-shirt", "price": 0, "quantity": {"XS":1,"S":1,"M":1,"L":1,"XL":1,"2XL":1}}`},
		{"missing size", `{"name": "Effort T-shirt", "price": 10, "quantity": {"XS":1,"S":1,"M":1,"L":1,"XL":1}}`},
		{"negative size", `{"name": "Effort T-shirt", "price": 10, "quantity": {"XS":1,"S":1,"M":-2,"L":1,"XL":1,"2XL":1}}`},
		{"malformed json", `{"name": `},
	}

	for _, tc := range cases {
		w := request(t, router, http.MethodPost, "/api/store", tc.body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status got %d want 400", tc.name, w.Code)
		}
	}
	if len(repo.created) != 0 {
		t.Fatal("repo reached on invalid input")
	}
}

func TestCreateItemReportsOffendingFields(t *testing.T) {
	router := storeRouter(&stubItemStore{})

	w := request(t, router, http.MethodPost, "/api/store",
		`{"name": "Effort T-shirt", "price": -1, "quantity": {"XS":1,"S":1,"M":1,"L":1,"XL":1,"2XL":1}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", w.Code)
	}

	var resp struct {
		Error  string   `json:"error"`
		Fields []string `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Fields) == 0 {
		t.Fatal("validation failure carries no field detail")
	}
	found := false
	for _, f := range resp.Fields {
		if strings.Contains(f, "Price") {
			found = true
		}
	}
	if !found {
		t.Fatalf("offending field missing from %v", resp.Fields)
	}
}

func TestUpdateItemRequiresID(t *testing.T) {
	router := storeRouter(&stubItemStore{})

	w := request(t, router, http.MethodPut, "/api/store", validItemBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", w.Code)
	}
}

func TestDeleteByNameRequiresName(t *testing.T) {
	router := storeRouter(&stubItemStore{})

	w := request(t, router, http.MethodDelete, "/api/store/effort-tee", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", w.Code)
	}
}

func TestDeleteRequiresID(t *testing.T) {
	router := storeRouter(&stubItemStore{})

	w := request(t, router, http.MethodDelete, "/api/store", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d want 400", w.Code)
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rizperdana/share-link-gan/pkg/ctxkeys"
)

// setupMockDB swaps the package DB for a sqlmock and silences the logger.
// Cleanup restores nothing; every test installs its own mock.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	Init(mockDB, log)
	return mock
}

// asOwner injects an authenticated user ID the way the JWT middleware does
func asOwner(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(ctxkeys.KeyUserID), userID)
		c.Next()
	}
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return out
}

func expectNoUnmet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sql expectations: %v", err)
	}
}

func TestDeleteLink_NotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec("DELETE FROM links").
		WithArgs("missing-id", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	router := gin.New()
	router.DELETE("/api/links/:id", asOwner("owner-1"), DeleteLink)

	w := doJSON(router, http.MethodDelete, "/api/links/missing-id", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	expectNoUnmet(t, mock)
}

func TestDeleteLink_OK(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec("DELETE FROM links").
		WithArgs("link-1", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	router := gin.New()
	router.DELETE("/api/links/:id", asOwner("owner-1"), DeleteLink)

	w := doJSON(router, http.MethodDelete, "/api/links/link-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	expectNoUnmet(t, mock)
}

func TestCreateLink_RejectsInvalidSchedule(t *testing.T) {
	setupMockDB(t)

	router := gin.New()
	router.POST("/api/links", asOwner("owner-1"), CreateLink)

	w := doJSON(router, http.MethodPost, "/api/links", map[string]any{
		"title":           "My link",
		"url":             "https://example.com",
		"scheduled_start": "2025-06-02T00:00:00Z",
		"scheduled_end":   "2025-06-01T00:00:00Z",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateLink_RejectsMissingTitle(t *testing.T) {
	setupMockDB(t)

	router := gin.New()
	router.POST("/api/links", asOwner("owner-1"), CreateLink)

	w := doJSON(router, http.MethodPost, "/api/links", map[string]any{
		"url": "https://example.com",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestReorderLinks(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE links SET sort_order").
		WithArgs(0, "link-b", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE links SET sort_order").
		WithArgs(1, "link-a", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := gin.New()
	router.PUT("/api/links/reorder", asOwner("owner-1"), ReorderLinks)

	w := doJSON(router, http.MethodPut, "/api/links/reorder", map[string]any{
		"link_ids": []string{"link-b", "link-a"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	expectNoUnmet(t, mock)
}

func TestTogglePostPublished(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("UPDATE posts SET is_published").
		WithArgs("post-1", "owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"is_published"}).AddRow(true))

	router := gin.New()
	router.PATCH("/api/posts/:id/publish", asOwner("owner-1"), TogglePostPublished)

	w := doJSON(router, http.MethodPatch, "/api/posts/post-1/publish", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := decodeBody(t, w)
	if body["is_published"] != true {
		t.Errorf("is_published = %v, want true", body["is_published"])
	}
	expectNoUnmet(t, mock)
}

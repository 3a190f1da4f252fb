// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler
// tests. The public endpoints run against in-memory stubs; the admin
// category tests need real constraints and are skipped when PostgreSQL
// is unavailable.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"platepress/internal/category"
	"platepress/internal/database"
	"platepress/internal/models"
	"platepress/internal/store"
)

// --- Stubs for the public handler interfaces ---

// stubSearcher records the request it receives and returns a fixed result.
type stubSearcher struct {
	lastReq models.SearchRequest
	results []models.Recipe
	err     error
}

func (s *stubSearcher) Search(_ context.Context, req models.SearchRequest) ([]models.Recipe, error) {
	s.lastReq = req
	return s.results, s.err
}

// stubSuggester records the limit it was asked for.
type stubSuggester struct {
	lastQuery string
	lastLimit int
	bundle    models.SuggestionBundle
	popular   []string
	err       error
}

func (s *stubSuggester) Suggest(_ context.Context, query string, limit int) (models.SuggestionBundle, error) {
	s.lastQuery = query
	s.lastLimit = limit
	return s.bundle, s.err
}

func (s *stubSuggester) PopularSearches(_ context.Context, limit int) ([]string, error) {
	s.lastLimit = limit
	return s.popular, s.err
}

// stubFinder serves recipes by ID from a map.
type stubFinder struct {
	recipes map[uuid.UUID]*models.Recipe
	err     error
}

func (s *stubFinder) FindByID(_ context.Context, _ *uuid.UUID, id uuid.UUID) (*models.Recipe, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.recipes[id], nil
}

// stubTree serves a fixed category tree snapshot.
type stubTree struct {
	tree *category.Tree
	err  error
}

func (s *stubTree) Load(context.Context) (*category.Tree, error) {
	return s.tree, s.err
}

// testTree builds a two-level snapshot: mains → pasta, plus desserts.
func testTree() *category.Tree {
	mains := uuid.New()
	return category.NewTree([]models.Category{
		{ID: mains, Name: "Main Dishes", Slug: "mains", SortOrder: 0, IsActive: true},
		{ID: uuid.New(), Name: "Pasta", Slug: "pasta", ParentID: &mains, IsActive: true},
		{ID: uuid.New(), Name: "Desserts", Slug: "desserts", SortOrder: 1, IsActive: true},
	})
}

// newPublic wires a Public handler over the given stubs, filling in
// harmless defaults for the rest.
func newPublic(searcher *stubSearcher, suggester *stubSuggester, finder *stubFinder, tree *stubTree) *Public {
	if searcher == nil {
		searcher = &stubSearcher{}
	}
	if suggester == nil {
		suggester = &stubSuggester{}
	}
	if finder == nil {
		finder = &stubFinder{}
	}
	if tree == nil {
		tree = &stubTree{tree: testTree()}
	}
	return NewPublic(searcher, suggester, finder, tree)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody unmarshals a recorder's JSON body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response body: %v\nbody: %s", err, rec.Body.String())
	}
}

// --- Integration infrastructure for the admin tests ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "platepress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "platepress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// newTestAdmin builds an Admin handler over a real category service and
// registers cleanup for the given test slugs.
func newTestAdmin(t *testing.T, slugs ...string) (*Admin, *sql.DB) {
	t.Helper()
	db := testDB(t)
	t.Cleanup(func() {
		for _, slug := range slugs {
			if _, err := db.Exec(`DELETE FROM categories WHERE slug = $1`, slug); err != nil {
				t.Errorf("cleanup category %s: %v", slug, err)
			}
		}
	})
	return NewAdmin(category.NewService(store.NewCategoryStore(db))), db
}

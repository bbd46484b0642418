package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/flowgen/internal/db"
	"github.com/ziadkadry99/flowgen/internal/flowchart"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	d, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return NewStore(d)
}

func sampleRecord(g flowchart.Grammar, created time.Time) Record {
	return Record{
		Grammar:    g,
		Prompt:     "Process for approving a loan application",
		Direction:  flowchart.TopToBottom,
		Complexity: flowchart.Medium,
		Code:       "flowchart TB\na[Do]",
		Model:      "gpt-3.5-turbo",
		CreatedAt:  created,
	}
}

func TestSaveAndGet(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	saved, err := store.Save(ctx, sampleRecord(flowchart.GrammarMermaid, time.Time{}))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected generated ID")
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	got, err := store.Get(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Code != "flowchart TB\na[Do]" || got.Grammar != flowchart.GrammarMermaid {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.Direction != flowchart.TopToBottom || got.Complexity != flowchart.Medium {
		t.Errorf("enums not round-tripped: %+v", got)
	}
}

func TestGetNotFound(t *testing.T) {
	store := setupStore(t)
	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersAndOrders(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, g := range []flowchart.Grammar{flowchart.GrammarMermaid, flowchart.GrammarD2, flowchart.GrammarMermaid} {
		rec := sampleRecord(g, base.Add(time.Duration(i)*time.Minute))
		rec.ID = string(rune('a' + i))
		if _, err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	all, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].ID != "c" {
		t.Errorf("expected newest first, got %q", all[0].ID)
	}

	mermaid, err := store.List(ctx, ListFilter{Grammar: flowchart.GrammarMermaid})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(mermaid) != 2 {
		t.Errorf("expected 2 mermaid records, got %d", len(mermaid))
	}

	limited, err := store.List(ctx, ListFilter{Limit: 1})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 record, got %d", len(limited))
	}
}

func TestRecordFromResult(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	res := &flowchart.Result{
		Grammar:      flowchart.GrammarD2,
		Request:      flowchart.Request{Prompt: "p", Direction: flowchart.LeftToRight, Complexity: flowchart.Simple},
		Code:         "direction: right\na -> b",
		Model:        "gpt-3.5-turbo",
		InputTokens:  100,
		OutputTokens: 50,
		CostUSD:      0.000125,
		Latency:      1500 * time.Millisecond,
	}
	if err := store.Record(ctx, res); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	recs, err := store.List(ctx, ListFilter{Grammar: flowchart.GrammarD2})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	if recs[0].LatencyMS != 1500 || recs[0].InputTokens != 100 || recs[0].Direction != flowchart.LeftToRight {
		t.Errorf("unexpected record: %+v", recs[0])
	}
}

func TestSavePropagatesDBError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO generations")).
		WillReturnError(errors.New("database is locked"))

	store := NewStore(db.Wrap(sqlDB))
	_, err = store.Save(context.Background(), sampleRecord(flowchart.GrammarMermaid, time.Now()))
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListQueryShape(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer sqlDB.Close()

	cols := []string{"id", "grammar", "prompt", "direction", "complexity", "code", "model", "input_tokens", "output_tokens", "cost_usd", "latency_ms", "created_at"}
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM generations WHERE 1=1 AND grammar = ? ORDER BY created_at DESC, id ASC LIMIT ?")).
		WithArgs("d2", MaxLimit).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("x", "d2", "p", "Top-to-Bottom", "Simple", "direction: down", "m", 1, 2, 0.0, 3, now))

	store := NewStore(db.Wrap(sqlDB))
	recs, err := store.List(context.Background(), ListFilter{Grammar: flowchart.GrammarD2, Limit: 10_000})
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "x" {
		t.Errorf("unexpected records: %+v", recs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	saved, err := store.Save(context.Background(), sampleRecord(flowchart.GrammarMermaid, time.Time{}))
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flowchart/history/?grammar=mermaid", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var list []Record
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 record, got %d", len(list))
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flowchart/history/"+saved.ID, nil))
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flowchart/history/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/flowchart/history/?grammar=plantuml", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad grammar status = %d", rec.Code)
	}
}

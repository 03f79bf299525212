package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"github.com/wonny/cyberdash/internal/contracts"
	"github.com/wonny/cyberdash/pkg/logger"
)

type fakeStore struct {
	records []*contracts.CompanyRecord
}

func (f *fakeStore) ListRecords(context.Context) ([]*contracts.CompanyRecord, error) {
	return f.records, nil
}

func (f *fakeStore) GetRecord(_ context.Context, symbol string) (*contracts.CompanyRecord, error) {
	for _, r := range f.records {
		if r.Symbol == symbol {
			return r, nil
		}
	}
	return nil, fmt.Errorf("no record for %s", symbol)
}

type fakeRefresher struct {
	records []*contracts.CompanyRecord
	err     error
}

func (f *fakeRefresher) Refresh(context.Context) ([]*contracts.CompanyRecord, error) {
	return f.records, f.err
}

func testRecords() []*contracts.CompanyRecord {
	return []*contracts.CompanyRecord{
		{Symbol: "CRWD", Group: "pure_play", QualityScore: contracts.ScoreOf(82)},
		{Symbol: "MSFT", Group: "cloud_leader", QualityScore: contracts.ScoreOf(90)},
	}
}

func TestRecordHandler_List(t *testing.T) {
	h := NewRecordHandler(&fakeStore{records: testRecords()}, nil, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var got []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0]["symbol"] != "CRWD" || got[0]["bucket"] != "pure_play" {
		t.Errorf("first record = %v", got[0])
	}
	// Undefined metrics serialize as null, not 0.
	if got[0]["arr_growth"] != nil {
		t.Errorf("arr_growth = %v, want null", got[0]["arr_growth"])
	}
}

func TestRecordHandler_ListFilterByBucket(t *testing.T) {
	h := NewRecordHandler(&fakeStore{records: testRecords()}, nil, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/records?bucket=cloud_leader", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	var got []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0]["symbol"] != "MSFT" {
		t.Errorf("filtered records = %v", got)
	}
}

func TestRecordHandler_Get(t *testing.T) {
	h := NewRecordHandler(&fakeStore{records: testRecords()}, nil, logger.Nop())

	router := mux.NewRouter()
	router.HandleFunc("/api/records/{symbol}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/records/CRWD", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/records/NOPE", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status for unknown symbol = %d, want 404", rec.Code)
	}
}

func TestRecordHandler_Refresh(t *testing.T) {
	h := NewRecordHandler(&fakeStore{}, &fakeRefresher{records: testRecords()}, logger.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["refreshed"] != 2 {
		t.Errorf("refreshed = %d, want 2", got["refreshed"])
	}
}

func TestRecordHandler_RefreshFailure(t *testing.T) {
	h := NewRecordHandler(&fakeStore{}, &fakeRefresher{err: fmt.Errorf("provider down")}, logger.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

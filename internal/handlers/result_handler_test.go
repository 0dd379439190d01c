package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"talentplay/internal/models"
	"talentplay/internal/service"
)

type fakeResults struct {
	records     map[string]*models.EvaluationResult
	listErr     error
	transitions []string
	deleted     []string
}

func newFakeResults(records ...*models.EvaluationResult) *fakeResults {
	f := &fakeResults{records: make(map[string]*models.EvaluationResult)}
	for _, r := range records {
		f.records[r.Code] = r
	}
	return f
}

func (f *fakeResults) Create(name string, expiryDate time.Time) (*models.EvaluationResult, error) {
	result := &models.EvaluationResult{
		Code:       "generated-code",
		Name:       name,
		Status:     models.StatusPending,
		SentDate:   time.Now(),
		ExpiryDate: expiryDate,
	}
	f.records[result.Code] = result
	return result, nil
}

func (f *fakeResults) Get(code string) (*models.EvaluationResult, error) {
	r, ok := f.records[code]
	if !ok {
		return nil, service.ErrNotFound
	}
	return r, nil
}

func (f *fakeResults) List() ([]models.EvaluationResult, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.EvaluationResult
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeResults) Transition(code string, target models.Status) error {
	r, ok := f.records[code]
	if !ok {
		return service.ErrNotFound
	}
	if !r.Status.CanTransitionTo(target) {
		return service.ErrInvalidTransition
	}
	r.Status = target
	f.transitions = append(f.transitions, code+":"+string(target))
	return nil
}

func (f *fakeResults) Delete(code string) error {
	if _, ok := f.records[code]; !ok {
		return service.ErrNotFound
	}
	delete(f.records, code)
	f.deleted = append(f.deleted, code)
	return nil
}

func TestGetUserResultsEmptyListSerializesAsArray(t *testing.T) {
	handler := NewResultHandler(newFakeResults())

	req := httptest.NewRequest(http.MethodGet, "/api/user-results", nil)
	rec := httptest.NewRecorder()
	handler.GetUserResults(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"results":[]`) {
		t.Errorf("empty list must serialize as [], got %s", rec.Body.String())
	}
}

func TestGetUserResultsByCode(t *testing.T) {
	handler := NewResultHandler(newFakeResults(
		&models.EvaluationResult{Code: "abc", Name: "Jane Doe", Status: models.StatusPending},
		&models.EvaluationResult{Code: "def", Name: "John Doe", Status: models.StatusPending},
	))

	req := httptest.NewRequest(http.MethodGet, "/api/user-results?code=abc", nil)
	rec := httptest.NewRecorder()
	handler.GetUserResults(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body resultsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Results) != 1 || body.Results[0].Code != "abc" {
		t.Errorf("results = %+v, want the single abc record", body.Results)
	}
}

func TestGetUserResultsUnknownCode(t *testing.T) {
	handler := NewResultHandler(newFakeResults())

	req := httptest.NewRequest(http.MethodGet, "/api/user-results?code=nope", nil)
	rec := httptest.NewRecorder()
	handler.GetUserResults(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateResultStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid transition", `{"code":"abc","status":"completed"}`, http.StatusOK},
		{"unknown code", `{"code":"nope","status":"completed"}`, http.StatusNotFound},
		{"backward transition", `{"code":"done","status":"pending"}`, http.StatusConflict},
		{"unknown status value", `{"code":"abc","status":"finished"}`, http.StatusBadRequest},
		{"missing code", `{"status":"completed"}`, http.StatusBadRequest},
		{"malformed body", `{not json`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewResultHandler(newFakeResults(
				&models.EvaluationResult{Code: "abc", Status: models.StatusPending},
				&models.EvaluationResult{Code: "done", Status: models.StatusCompleted},
			))

			req := httptest.NewRequest(http.MethodPost, "/api/update-result-status", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.UpdateResultStatus(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestDeleteResult(t *testing.T) {
	results := newFakeResults(&models.EvaluationResult{Code: "abc", Status: models.StatusPending})
	handler := NewResultHandler(results)

	req := httptest.NewRequest(http.MethodDelete, "/api/delete-result", strings.NewReader(`{"code":"abc"}`))
	rec := httptest.NewRecorder()
	handler.DeleteResult(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if len(results.deleted) != 1 || results.deleted[0] != "abc" {
		t.Errorf("deleted = %v, want [abc]", results.deleted)
	}
}

func TestDeleteResultUnknownCode(t *testing.T) {
	handler := NewResultHandler(newFakeResults())

	req := httptest.NewRequest(http.MethodDelete, "/api/delete-result", strings.NewReader(`{"code":"nope"}`))
	rec := httptest.NewRecorder()
	handler.DeleteResult(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCreateResult(t *testing.T) {
	handler := NewResultHandler(newFakeResults())

	req := httptest.NewRequest(http.MethodPost, "/api/create-result", strings.NewReader(`{"name":"Jane Doe"}`))
	rec := httptest.NewRecorder()
	handler.CreateResult(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}

	var created models.EvaluationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.Code == "" || created.Status != models.StatusPending {
		t.Errorf("created = %+v, want pending record with a code", created)
	}
	if created.ExpiryDate.Before(time.Now().Add(13 * 24 * time.Hour)) {
		t.Error("default invitation validity should be applied when no expiry is given")
	}
}

func TestCreateResultMissingName(t *testing.T) {
	handler := NewResultHandler(newFakeResults())

	req := httptest.NewRequest(http.MethodPost, "/api/create-result", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	handler.CreateResult(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

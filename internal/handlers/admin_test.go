package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aimhealth/growthos/backend/internal/seed"
	"github.com/gin-gonic/gin"
)

type mockSeedApplier struct {
	result  *seed.Result
	err     error
	applied []string
	lastSQL string
}

func (m *mockSeedApplier) Apply(ctx context.Context, seedName, sqlContent string) (*seed.Result, error) {
	m.applied = append(m.applied, seedName)
	m.lastSQL = sqlContent
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &seed.Result{SeedName: seedName, Status: seed.StatusApplied, AppliedAt: time.Now().UTC()}, nil
}

func seedRouter(adminKey string, applier SeedApplier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAdminHandler(adminKey, applier)
	r.POST("/api/v1/admin/seed", h.Seed)
	return r
}

func postSeed(r *gin.Engine, adminKey, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/seed", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSeedRejectsMissingAdminKey(t *testing.T) {
	applier := &mockSeedApplier{}
	r := seedRouter("secret", applier)

	w := postSeed(r, "", `{"seed_name":"demo_data","sql_content":"SELECT 1"}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
	if len(applier.applied) != 0 {
		t.Error("applier must not run without a valid key")
	}
}

func TestSeedRejectsWrongAdminKey(t *testing.T) {
	r := seedRouter("secret", &mockSeedApplier{})

	w := postSeed(r, "wrong", `{"seed_name":"demo_data","sql_content":"SELECT 1"}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestSeedRejectsWhenNoKeyConfigured(t *testing.T) {
	// an empty configured key disables the endpoint rather than opening it up
	r := seedRouter("", &mockSeedApplier{})

	w := postSeed(r, "", `{"seed_name":"demo_data","sql_content":"SELECT 1"}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestSeedAuthCheckedBeforeValidation(t *testing.T) {
	// a garbage body with a bad key must still yield 403, not 400
	r := seedRouter("secret", &mockSeedApplier{})

	w := postSeed(r, "wrong", `not json at all`)
	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 before body validation", w.Code)
	}
}

func TestSeedUnavailableWithoutDatabase(t *testing.T) {
	r := seedRouter("secret", nil)

	w := postSeed(r, "secret", `{"seed_name":"demo_data","sql_content":"SELECT 1"}`)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got == "" {
		t.Error("503 response should set Retry-After")
	}
}

func TestSeedValidationAggregatesFieldErrors(t *testing.T) {
	r := seedRouter("secret", &mockSeedApplier{})

	w := postSeed(r, "secret", `{"seed_name":"ab"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var problem struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to parse problem response: %v", err)
	}
	if len(problem.Errors) != 2 {
		t.Errorf("expected 2 field errors (short name, missing sql), got %d", len(problem.Errors))
	}
}

func TestSeedApplies(t *testing.T) {
	applier := &mockSeedApplier{}
	r := seedRouter("secret", applier)

	w := postSeed(r, "secret", `{"seed_name":"demo_data","sql_content":"INSERT INTO referral_sources (name) VALUES ('Metro')"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var result seed.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}
	if result.Status != seed.StatusApplied {
		t.Errorf("status = %q, want applied", result.Status)
	}
	if len(applier.applied) != 1 || applier.applied[0] != "demo_data" {
		t.Errorf("applier calls = %v, want [demo_data]", applier.applied)
	}
}

func TestSeedSkipsAlreadyApplied(t *testing.T) {
	applier := &mockSeedApplier{
		result: &seed.Result{SeedName: "demo_data", Status: seed.StatusSkipped},
	}
	r := seedRouter("secret", applier)

	w := postSeed(r, "secret", `{"seed_name":"demo_data","sql_content":"SELECT 1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for a skipped seed", w.Code)
	}

	var result seed.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse result: %v", err)
	}
	if result.Status != seed.StatusSkipped {
		t.Errorf("status = %q, want skipped", result.Status)
	}
}

func TestSeedReportsDatabaseError(t *testing.T) {
	applier := &mockSeedApplier{err: errors.New(`pq: relation "nope" does not exist`)}
	r := seedRouter("secret", applier)

	w := postSeed(r, "secret", `{"seed_name":"demo_data","sql_content":"INSERT INTO nope VALUES (1)"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body struct {
		Status string `json:"status"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse error body: %v", err)
	}
	if body.Status != "error" {
		t.Errorf("status = %q, want error", body.Status)
	}
	if !strings.Contains(body.Detail, "does not exist") {
		t.Errorf("detail should carry the database error, got %q", body.Detail)
	}
}

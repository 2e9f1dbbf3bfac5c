package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(raw)
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func setupTestServer(t *testing.T) *gin.Engine {
	// integration tests are opt-in. Set DB_DSN_TEST=1 and DB_DSN to run them.
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	initDB()
	r := gin.Default()
	setupRoutes(r)
	return r
}

func registerAndLogin(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	resp := performRequest(r, http.MethodPost, "/auth/signup",
		jsonBody(t, map[string]string{"email": email, "password": "secret1"}), "")
	if resp.Code != 200 {
		t.Fatalf("signup %s failed status=%d body=%s", email, resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/auth/login",
		jsonBody(t, map[string]string{"email": email, "password": "secret1"}), "")
	if resp.Code != 200 {
		t.Fatalf("login %s failed status=%d body=%s", email, resp.Code, resp.Body.String())
	}
	token, _ := decodeMap(t, resp)["access_token"].(string)
	if token == "" {
		t.Fatalf("empty token for %s", email)
	}
	return token
}

func fetchPortfolio(t *testing.T, r *gin.Engine, token string) (float64, []map[string]any) {
	t.Helper()
	resp := performRequest(r, http.MethodGet, "/portfolio/me", nil, token)
	if resp.Code != 200 {
		t.Fatalf("portfolio fetch failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	body := decodeMap(t, resp)
	amount, _ := body["monthly_investment"].(float64)
	rawItems, _ := body["allocation"].([]any)
	items := make([]map[string]any, 0, len(rawItems))
	for _, it := range rawItems {
		items = append(items, it.(map[string]any))
	}
	return amount, items
}

func TestConnectionRequestLifecycle(t *testing.T) {
	r := setupTestServer(t)
	suffix := time.Now().UnixNano()

	founderEmail := fmt.Sprintf("founder%d@example.com", suffix)
	investorEmail := fmt.Sprintf("investor%d@example.com", suffix)
	founderToken := registerAndLogin(t, r, founderEmail)
	investorToken := registerAndLogin(t, r, investorEmail)

	// Founder registers a startup entity.
	resp := performRequest(r, http.MethodPost, "/startups", jsonBody(t, map[string]any{
		"name": "Acme Robotics", "revenue": 50000.0, "burn": 10000.0,
	}), founderToken)
	if resp.Code != 200 {
		t.Fatalf("create startup failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	startupID, _ := decodeMap(t, resp)["id"].(string)
	if startupID == "" {
		t.Fatalf("missing startup id")
	}

	// Investor connects.
	resp = performRequest(r, http.MethodPost, "/invest/connect", jsonBody(t, map[string]any{
		"startupId": startupID, "message": "interested in your seed round",
	}), investorToken)
	body := decodeMap(t, resp)
	if resp.Code != 200 || body["created"] != true || body["duplicate"] == true {
		t.Fatalf("connect failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	requestID, _ := body["request_id"].(string)

	// Second connect while the first is pending is reported as a duplicate.
	resp = performRequest(r, http.MethodPost, "/invest/connect", jsonBody(t, map[string]any{
		"startupId": startupID,
	}), investorToken)
	body = decodeMap(t, resp)
	if resp.Code != 200 || body["duplicate"] != true || body["created"] == true {
		t.Fatalf("expected duplicate outcome, got status=%d body=%s", resp.Code, resp.Body.String())
	}

	// Owner dashboard sees exactly one request from this investor.
	resp = performRequest(r, http.MethodGet, "/invest/startup/requests", nil, founderToken)
	if resp.Code != 200 {
		t.Fatalf("owner list failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var rows []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode owner list: %v", err)
	}
	count := 0
	for _, row := range rows {
		if row["senderEmail"] == investorEmail {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 request from investor, got %d", count)
	}

	// Mark read leaves status alone.
	resp = performRequest(r, http.MethodPost, "/invest/read/"+requestID, nil, founderToken)
	if resp.Code != 200 {
		t.Fatalf("mark read failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// Investor cannot resolve a request they don't own.
	resp = performRequest(r, http.MethodPost, "/invest/startup/requests/update", jsonBody(t, map[string]any{
		"id": requestID, "action": "accept",
	}), investorToken)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non-owner resolve, got %d", resp.Code)
	}

	// Invalid action is rejected.
	resp = performRequest(r, http.MethodPost, "/invest/startup/requests/update", jsonBody(t, map[string]any{
		"id": requestID, "action": "explode",
	}), founderToken)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid action, got %d", resp.Code)
	}

	// Accept succeeds and notifies the investor once.
	resp = performRequest(r, http.MethodPost, "/invest/startup/requests/update", jsonBody(t, map[string]any{
		"id": requestID, "action": "accept",
	}), founderToken)
	body = decodeMap(t, resp)
	if resp.Code != 200 || body["new_status"] != "accepted" {
		t.Fatalf("accept failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	resp = performRequest(r, http.MethodGet, "/notifications", nil, investorToken)
	if resp.Code != 200 {
		t.Fatalf("notifications fetch failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var notifs []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &notifs); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	accepted := 0
	for _, n := range notifs {
		if n["type"] == "investor_request_accepted" {
			accepted++
		}
	}
	if accepted != 1 {
		t.Fatalf("expected exactly 1 acceptance notification, got %d", accepted)
	}

	// Terminal states are immutable: a second resolve fails.
	for _, action := range []string{"accept", "reject"} {
		resp = performRequest(r, http.MethodPost, "/invest/startup/requests/update", jsonBody(t, map[string]any{
			"id": requestID, "action": action,
		}), founderToken)
		if resp.Code != http.StatusNotFound {
			t.Fatalf("expected 404 re-resolving with %s, got %d", action, resp.Code)
		}
	}
}

func TestJobProfileUpdateGeneratesPortfolio(t *testing.T) {
	r := setupTestServer(t)
	suffix := time.Now().UnixNano()

	token := registerAndLogin(t, r, fmt.Sprintf("job%d@example.com", suffix))

	resp := performRequest(r, http.MethodPut, "/auth/profile", jsonBody(t, map[string]any{
		"user_type":        "job",
		"monthly_income":   5000.0,
		"monthly_expenses": 2000.0,
		"risk_tolerance":   "high",
	}), token)
	body := decodeMap(t, resp)
	if resp.Code != 200 || body["portfolio_regenerated"] != true {
		t.Fatalf("profile update failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 0.5 * 3000 * 1.4 = 2100, split 60/30/10 at high risk.
	amount, items := fetchPortfolio(t, r, token)
	if amount != 2100 {
		t.Fatalf("expected monthly investment 2100, got %v", amount)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 line items, got %d", len(items))
	}
	wantPercents := []float64{60, 30, 10}
	wantAmounts := []float64{1260, 630, 210}
	for i, item := range items {
		if item["percent"].(float64) != wantPercents[i] {
			t.Fatalf("item %d percent = %v, want %v", i, item["percent"], wantPercents[i])
		}
		if math.Abs(item["amount"].(float64)-wantAmounts[i]) > 1e-6 {
			t.Fatalf("item %d amount = %v, want %v", i, item["amount"], wantAmounts[i])
		}
	}

	// Recommendations report the same derivation with clamped confidence.
	resp = performRequest(r, http.MethodGet, "/recommendations/job", nil, token)
	if resp.Code != 200 {
		t.Fatalf("recommendations failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	recBody := decodeMap(t, resp)
	if recBody["recommended_investment"].(float64) != 2100 {
		t.Fatalf("expected recommended_investment 2100, got %v", recBody["recommended_investment"])
	}
	for _, key := range []string{"invest_confidence", "savings_confidence", "emergency_confidence", "confidence_score"} {
		score := recBody[key].(float64)
		if score < 55 || score > 95 {
			t.Fatalf("%s = %v outside [55, 95]", key, score)
		}
	}

	resp = performRequest(r, http.MethodGet, "/finance/job-plan", nil, token)
	if resp.Code != 200 {
		t.Fatalf("job plan failed status=%d body=%s", resp.Code, resp.Body.String())
	}
}

func TestStartupProfileUpdateGeneratesPortfolio(t *testing.T) {
	r := setupTestServer(t)
	suffix := time.Now().UnixNano()

	token := registerAndLogin(t, r, fmt.Sprintf("startup%d@example.com", suffix))

	resp := performRequest(r, http.MethodPut, "/auth/profile", jsonBody(t, map[string]any{
		"user_type":     "startup",
		"annual_budget": 100000.0,
	}), token)
	if resp.Code != 200 {
		t.Fatalf("profile update failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 30% of budget, always the business split.
	amount, items := fetchPortfolio(t, r, token)
	if amount != 30000 {
		t.Fatalf("expected monthly investment 30000, got %v", amount)
	}
	wantAmounts := []float64{18000, 6000, 6000}
	for i, item := range items {
		if math.Abs(item["amount"].(float64)-wantAmounts[i]) > 1e-6 {
			t.Fatalf("item %d amount = %v, want %v", i, item["amount"], wantAmounts[i])
		}
	}

	// Job-only endpoints reject startup users.
	resp = performRequest(r, http.MethodGet, "/recommendations/job", nil, token)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for startup on job recommendations, got %d", resp.Code)
	}
}

func TestPortfoliosAreIsolatedBetweenUsers(t *testing.T) {
	r := setupTestServer(t)
	suffix := time.Now().UnixNano()

	tokenA := registerAndLogin(t, r, fmt.Sprintf("alice%d@example.com", suffix))
	tokenB := registerAndLogin(t, r, fmt.Sprintf("bob%d@example.com", suffix))

	for token, income := range map[string]float64{tokenA: 5000, tokenB: 8000} {
		resp := performRequest(r, http.MethodPut, "/auth/profile", jsonBody(t, map[string]any{
			"user_type":        "job",
			"monthly_income":   income,
			"monthly_expenses": 2000.0,
			"risk_tolerance":   "high",
		}), token)
		if resp.Code != 200 {
			t.Fatalf("profile update failed status=%d body=%s", resp.Code, resp.Body.String())
		}
	}

	amountA, _ := fetchPortfolio(t, r, tokenA)
	amountB, _ := fetchPortfolio(t, r, tokenB)
	if amountA != 2100 || amountB != 4200 {
		t.Fatalf("cross-user leakage: got %v and %v, want 2100 and 4200", amountA, amountB)
	}
}

func TestPersonalFinanceValidation(t *testing.T) {
	r := setupTestServer(t)
	suffix := time.Now().UnixNano()
	token := registerAndLogin(t, r, fmt.Sprintf("val%d@example.com", suffix))

	// Negative values are rejected before any write.
	resp := performRequest(r, http.MethodPut, "/finance/personal", jsonBody(t, map[string]any{
		"monthly_income":     -1.0,
		"monthly_expenses":   0.0,
		"current_savings":    0.0,
		"monthly_investment": 0.0,
	}), token)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative income, got %d", resp.Code)
	}

	resp = performRequest(r, http.MethodPut, "/finance/personal", jsonBody(t, map[string]any{
		"monthly_income":     3000.0,
		"monthly_expenses":   1000.0,
		"current_savings":    500.0,
		"monthly_investment": 200.0,
	}), token)
	if resp.Code != 200 {
		t.Fatalf("valid personal update failed status=%d body=%s", resp.Code, resp.Body.String())
	}
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/custodia-labs/nika-core/internal/adapters/driven/auth"
	"github.com/custodia-labs/nika-core/internal/core/domain"
	"github.com/custodia-labs/nika-core/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/nika-core/internal/core/ports/driving"
)

// stubConversation is a canned ConversationService for handler tests
type stubConversation struct {
	result    *driving.TurnResult
	err       error
	replies   []string
	cleared   []string
	lastUser  string
	lastInput string
}

func (s *stubConversation) Reply(_ context.Context, userID, text string) (*driving.TurnResult, error) {
	s.lastUser = userID
	s.lastInput = text
	s.replies = append(s.replies, text)
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return &driving.TurnResult{Reply: "stub reply", Mode: domain.ModeQA, Intent: domain.IntentUnknown}, nil
}

func (s *stubConversation) ClearSession(_ context.Context, userID string) error {
	s.cleared = append(s.cleared, userID)
	return nil
}

type serverFixture struct {
	server   *Server
	conv     *stubConversation
	accounts *mocks.MockAccountStore
	adapter  *auth.Adapter
}

func newServerFixture(t *testing.T) *serverFixture {
	t.Helper()

	conv := &stubConversation{}
	accounts := mocks.NewMockAccountStore()
	adapter := auth.NewAdapter("test-secret")

	server := NewServer(DefaultConfig(), conv, adapter, accounts, nil, nil, nil)
	return &serverFixture{server: server, conv: conv, accounts: accounts, adapter: adapter}
}

func (f *serverFixture) token(t *testing.T, userID string) string {
	t.Helper()
	now := time.Now()
	token, err := f.adapter.GenerateToken(&domain.TokenClaims{
		UserID:    userID,
		Email:     userID + "@example.com",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

func (f *serverFixture) doReply(t *testing.T, token, text string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(ReplyRequest{Text: text})
	req := httptest.NewRequest("POST", "/api/v1/reply", bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.server.router.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	f.server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandleReply_Success(t *testing.T) {
	f := newServerFixture(t)
	f.conv.result = &driving.TurnResult{
		Reply:  "you need a student visa",
		Mode:   domain.ModeQA,
		Intent: domain.IntentStudentVisa,
	}

	rec := f.doReply(t, f.token(t, "user-1"), "how do I study abroad?")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ReplyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Reply != "you need a student visa" {
		t.Errorf("unexpected reply %q", resp.Reply)
	}
	if resp.Intent != "student_visa" {
		t.Errorf("unexpected intent %q", resp.Intent)
	}
	if f.conv.lastUser != "user-1" {
		t.Errorf("expected user from token, got %q", f.conv.lastUser)
	}
}

func TestHandleReply_MissingToken(t *testing.T) {
	f := newServerFixture(t)

	rec := f.doReply(t, "", "hello")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if len(f.conv.replies) != 0 {
		t.Error("expected no turn to run without a token")
	}
}

func TestHandleReply_InvalidToken(t *testing.T) {
	f := newServerFixture(t)

	rec := f.doReply(t, "garbage-token", "hello")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestHandleReply_ExpiredToken(t *testing.T) {
	f := newServerFixture(t)

	token, err := f.adapter.GenerateToken(&domain.TokenClaims{
		UserID:    "user-1",
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec := f.doReply(t, token, "hello")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "token expired" {
		t.Errorf("expected token expired error, got %q", resp.Error)
	}
}

func TestHandleReply_QuotaExceeded(t *testing.T) {
	f := newServerFixture(t)
	token := f.token(t, "user-1")

	// Free tier allows 10 turns per day.
	for i := 0; i < 10; i++ {
		if rec := f.doReply(t, token, "question"); rec.Code != http.StatusOK {
			t.Fatalf("turn %d: expected 200, got %d", i, rec.Code)
		}
	}

	rec := f.doReply(t, token, "one more")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", rec.Code)
	}
	if len(f.conv.replies) != 10 {
		t.Errorf("expected refused turn not to reach the orchestrator, got %d turns", len(f.conv.replies))
	}
}

func TestHandleReply_ProTierLimit(t *testing.T) {
	f := newServerFixture(t)
	token := f.token(t, "user-1")

	// First request creates the account; then upgrade it.
	if rec := f.doReply(t, token, "question"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	f.accounts.SetTier("user-1", domain.TierPro)

	for i := 1; i < 25; i++ {
		if rec := f.doReply(t, token, "question"); rec.Code != http.StatusOK {
			t.Fatalf("turn %d: expected 200, got %d", i, rec.Code)
		}
	}
	if rec := f.doReply(t, token, "one more"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 past pro limit, got %d", rec.Code)
	}
}

func TestHandleReply_BadBody(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest("POST", "/api/v1/reply", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Authorization", "Bearer "+f.token(t, "user-1"))
	rec := httptest.NewRecorder()
	f.server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleReply_TextTooLong(t *testing.T) {
	f := newServerFixture(t)

	long := bytes.Repeat([]byte("a"), 5000)
	rec := f.doReply(t, f.token(t, "user-1"), string(long))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if len(f.conv.replies) != 0 {
		t.Error("expected oversized text to be rejected before the orchestrator")
	}
}

func TestHandleClearSession(t *testing.T) {
	f := newServerFixture(t)

	req := httptest.NewRequest("DELETE", "/api/v1/session", nil)
	req.Header.Set("Authorization", "Bearer "+f.token(t, "user-1"))
	rec := httptest.NewRecorder()
	f.server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(f.conv.cleared) != 1 || f.conv.cleared[0] != "user-1" {
		t.Errorf("expected session cleared for user-1, got %v", f.conv.cleared)
	}
}

func TestHandleClearSession_DoesNotConsumeQuota(t *testing.T) {
	f := newServerFixture(t)
	token := f.token(t, "user-1")

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("DELETE", "/api/v1/session", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		f.server.router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}

	acct, err := f.accounts.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acct.TurnsToday != 0 {
		t.Errorf("expected no quota consumed by session clears, got %d", acct.TurnsToday)
	}
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"FinanceAdvisor/internal/advisor"
	"FinanceAdvisor/internal/auth"
	"FinanceAdvisor/internal/config"
	"FinanceAdvisor/internal/handler"
	"FinanceAdvisor/internal/models"
	"FinanceAdvisor/internal/ollama"
	"FinanceAdvisor/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStack(t *testing.T, modelURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, storage.InitDB(path))
	t.Cleanup(func() { storage.CloseDB() })

	cfg := config.Config{
		OllamaURL:     modelURL,
		OllamaModel:   "test-model",
		OllamaTimeout: time.Second,
		JWTSecret:     "test-secret",
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret)
	h := handler.New(tokens, advisor.New(ollama.New(cfg)))
	return handler.SetupRouter(h, tokens)
}

func newStackWithModel(t *testing.T, fn http.HandlerFunc) *gin.Engine {
	t.Helper()
	srv := httptest.NewServer(fn)
	t.Cleanup(srv.Close)
	return newStack(t, srv.URL)
}

func modelReplying(markdown string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"response": markdown})
	}
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func signupAndLogin(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "password123"}

	w := doJSON(router, http.MethodPost, "/signup", "", creds)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/login", "", creds)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func validProfileBody() map[string]any {
	return map[string]any{
		"name":                 "Priya",
		"age":                  34,
		"occupation":           "engineer",
		"family_size":          3,
		"monthly_income":       200000,
		"monthly_expenses":     120000,
		"monthly_savings":      50000,
		"current_debts":        300000,
		"debt_interest_rate":   9.5,
		"risk_tolerance":       "2",
		"investment_goal":      "retirement",
		"investment_knowledge": "3",
	}
}

func createProfile(t *testing.T, router *gin.Engine, token string) {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/profile", token, validProfileBody())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestSignupAndLoginFlow(t *testing.T) {
	router := newStackWithModel(t, modelReplying("ok"))

	creds := map[string]string{"username": "priya", "password": "password123"}
	w := doJSON(router, http.MethodPost, "/signup", "", creds)
	assert.Equal(t, http.StatusOK, w.Code)

	// duplicate username
	w = doJSON(router, http.MethodPost, "/signup", "", creds)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Username already exists")

	// whitespace-only credentials
	w = doJSON(router, http.MethodPost, "/signup", "", map[string]string{"username": "   ", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPost, "/login", "", creds)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodPost, "/login", "", map[string]string{"username": "priya", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodPost, "/login", "", map[string]string{"username": "ghost", "password": "password123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newStackWithModel(t, modelReplying("ok"))

	w := doJSON(router, http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Basic whatever")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileValidation(t *testing.T) {
	router := newStackWithModel(t, modelReplying("ok"))
	token := signupAndLogin(t, router, "priya")

	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{"underage", func(b map[string]any) { b["age"] = 17 }, "age"},
		{"implausible age", func(b map[string]any) { b["age"] = 130 }, "age"},
		{"expenses exceed income", func(b map[string]any) { b["monthly_expenses"] = 250000 }, "monthly_expenses"},
		{"savings exceed margin", func(b map[string]any) { b["monthly_savings"] = 150000 }, "monthly_savings"},
		{"negative debts", func(b map[string]any) { b["current_debts"] = -1 }, "current_debts"},
		{"debt rate above 100", func(b map[string]any) { b["debt_interest_rate"] = 130 }, "debt_interest_rate"},
		{"unknown risk code", func(b map[string]any) { b["risk_tolerance"] = "9" }, "risk_tolerance"},
		{"unknown goal", func(b map[string]any) { b["investment_goal"] = "yachts" }, "investment_goal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validProfileBody()
			tt.mutate(body)

			w := doJSON(router, http.MethodPost, "/api/profile", token, body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

			var resp struct {
				Fields map[string]string `json:"fields"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp.Fields, tt.field)
		})
	}
}

func TestProfileCRUD(t *testing.T) {
	router := newStackWithModel(t, modelReplying("ok"))
	token := signupAndLogin(t, router, "priya")

	// no profile yet
	w := doJSON(router, http.MethodGet, "/api/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	createProfile(t, router, token)

	w = doJSON(router, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.FinancialProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Priya", profile.Name)
	// derived fields filled from the monthly values
	assert.Equal(t, "2400000", profile.AnnualIncome.String())

	// only one profile per user
	w = doJSON(router, http.MethodPost, "/api/profile", token, validProfileBody())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := validProfileBody()
	body["occupation"] = "architect"
	w = doJSON(router, http.MethodPut, "/api/profile", token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(router, http.MethodGet, "/api/profile", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "architect", profile.Occupation)
}

func TestGenerateAdviceStoresSanitizedRecord(t *testing.T) {
	router := newStackWithModel(t, modelReplying("**Save 20%**"))
	token := signupAndLogin(t, router, "priya")
	createProfile(t, router, token)

	w := doJSON(router, http.MethodPost, "/api/advice", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var record models.AdviceRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Contains(t, record.Content, "<strong>Save 20%</strong>")
	assert.NotContains(t, record.Content, "**")
	assert.Contains(t, record.Title, "Priya")
	assert.Contains(t, record.Prompt, "Retirement Planning")

	// visible in history and fetchable by id
	w = doJSON(router, http.MethodGet, "/api/advice", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		History []models.AdviceRecord `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.History, 1)

	w = doJSON(router, http.MethodGet, fmt.Sprintf("/api/advice/%d", record.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGenerateAdviceWithoutProfile(t *testing.T) {
	router := newStackWithModel(t, modelReplying("ok"))
	token := signupAndLogin(t, router, "priya")

	w := doJSON(router, http.MethodPost, "/api/advice", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateAdviceAdvisorUnavailable(t *testing.T) {
	srv := httptest.NewServer(modelReplying("never used"))
	url := srv.URL
	srv.Close() // endpoint is down

	router := newStack(t, url)
	token := signupAndLogin(t, router, "priya")
	createProfile(t, router, token)

	w := doJSON(router, http.MethodPost, "/api/advice", token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "advisor unavailable, try again")

	// no record was created
	w = doJSON(router, http.MethodGet, "/api/advice", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		History []models.AdviceRecord `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(t, list.History)
}

func TestChatTurn(t *testing.T) {
	router := newStackWithModel(t, modelReplying("Index funds are a **solid** core holding."))
	token := signupAndLogin(t, router, "priya")
	createProfile(t, router, token)

	w := doJSON(router, http.MethodPost, "/api/chat", token, map[string]string{"message": "Should I buy index funds?"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		ResponseHTML string `json:"response_html"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.ResponseHTML, "<strong>solid</strong>")

	w = doJSON(router, http.MethodGet, "/api/chat/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		History []models.ChatMessage `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.History, 2)
	assert.Equal(t, models.RoleUser, history.History[0].Role)
	assert.Equal(t, "Should I buy index funds?", history.History[0].Content)
	assert.Equal(t, models.RoleAdvisor, history.History[1].Role)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	router := newStackWithModel(t, modelReplying("ok"))
	token := signupAndLogin(t, router, "priya")
	createProfile(t, router, token)

	w := doJSON(router, http.MethodPost, "/api/chat", token, map[string]string{"message": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatAdvisorUnavailableKeepsUserTurn(t *testing.T) {
	srv := httptest.NewServer(modelReplying("never used"))
	url := srv.URL
	srv.Close()

	router := newStack(t, url)
	token := signupAndLogin(t, router, "priya")
	createProfile(t, router, token)

	w := doJSON(router, http.MethodPost, "/api/chat", token, map[string]string{"message": "hello?"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "advisor unavailable, try again")

	// the user's message is kept, no advisor reply was stored
	w = doJSON(router, http.MethodGet, "/api/chat/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history struct {
		History []models.ChatMessage `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &history))
	require.Len(t, history.History, 1)
	assert.Equal(t, models.RoleUser, history.History[0].Role)
}

func TestChatModelSeesProfileContext(t *testing.T) {
	var seenPrompt string
	router := newStackWithModel(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		seenPrompt = req.Prompt
		json.NewEncoder(w).Encode(map[string]string{"response": "noted"})
	})
	token := signupAndLogin(t, router, "priya")
	createProfile(t, router, token)

	w := doJSON(router, http.MethodPost, "/api/chat", token, map[string]string{"message": "What about gold?"})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Contains(t, seenPrompt, "Priya")
	assert.Contains(t, seenPrompt, "Retirement Planning")
	assert.Contains(t, seenPrompt, "User asks: What about gold?")
}

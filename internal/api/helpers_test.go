package api

import (
	"alcyxob/gym-system/internal/config"
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/service"
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testServer struct {
	router    *gin.Engine
	auth      *MockAuthService
	users     *MockUserService
	gymPasses *MockGymPassService
	tasks     *MockTaskService
	trainings *MockTrainingService
}

func newTestServer(t *testing.T) *testServer {
	return newTestServerWith(t, nil)
}

func newTestServerWith(t *testing.T, limiter *LoginRateLimiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	ts := &testServer{
		router:    gin.New(),
		auth:      new(MockAuthService),
		users:     new(MockUserService),
		gymPasses: new(MockGymPassService),
		tasks:     new(MockTaskService),
		trainings: new(MockTrainingService),
	}
	cfg := config.Config{
		Server:    config.ServerConfig{Services: config.AllServices},
		RateLimit: config.RateLimitConfig{LoginPerMinute: 600, LoginBurst: 100},
	}
	SetupRoutes(ts.router, Dependencies{
		Config:          cfg,
		AuthService:     ts.auth,
		UserService:     ts.users,
		GymPassService:  ts.gymPasses,
		TaskService:     ts.tasks,
		TrainingService: ts.trainings,
		LoginLimiter:    limiter,
	})
	t.Cleanup(func() {
		ts.auth.AssertExpectations(t)
		ts.users.AssertExpectations(t)
		ts.gymPasses.AssertExpectations(t)
		ts.tasks.AssertExpectations(t)
		ts.trainings.AssertExpectations(t)
	})
	return ts
}

// login makes token resolve to a principal with the given role.
func (ts *testServer) login(role domain.Role) (string, service.Principal) {
	p := service.Principal{UserID: primitive.NewObjectID(), Role: role}
	token := "token-" + p.UserID.Hex()
	ts.auth.On("ParseToken", token).Return(p, nil).Maybe()
	return token, p
}

type request struct {
	method string
	path   string
	body   any
	token  string
	lang   string
}

func (ts *testServer) do(t *testing.T, r request) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if r.body != nil {
		if s, ok := r.body.(string); ok {
			body.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&body).Encode(r.body))
		}
	}
	req := httptest.NewRequest(r.method, r.path, &body)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	if r.lang != "" {
		req.Header.Set("Accept-Language", r.lang)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) map[string]any {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	return decode(t, w)
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teams-api/internal/application"
	"teams-api/internal/domain/model"
)

type mockTeamsService struct {
	mock.Mock
}

func (m *mockTeamsService) ListTeams(ctx context.Context) ([]model.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Team), args.Error(1)
}

func (m *mockTeamsService) GetTeam(ctx context.Context, id int64) (*model.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Team), args.Error(1)
}

func (m *mockTeamsService) CreateTeam(ctx context.Context, req *model.CreateTeamRequest) ([]model.Team, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Team), args.Error(1)
}

func (m *mockTeamsService) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ application.TeamsService = (*mockTeamsService)(nil)

func setupRouter(svc application.TeamsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	h := NewTeamsHandler(svc)
	router.GET("/teams", h.ListTeams)
	router.GET("/teams/:id", h.GetTeam)
	router.POST("/teams", h.CreateTeam)
	router.GET("/api/health", NewHealthHandler(svc).Check)
	return router
}

func perform(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestTeamsHandler_ListTeams(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := new(mockTeamsService)
		svc.On("ListTeams", mock.Anything).Return([]model.Team{
			{ID: 1, Name: "Falcons", Coach: "J. Doe", Value: 1.5, Founded: 1995},
		}, nil)

		w := perform(setupRouter(svc), http.MethodGet, "/teams", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var teams []model.Team
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &teams))
		require.Len(t, teams, 1)
		assert.Equal(t, "Falcons", teams[0].Name)
		svc.AssertExpectations(t)
	})

	t.Run("empty table", func(t *testing.T) {
		svc := new(mockTeamsService)
		svc.On("ListTeams", mock.Anything).Return([]model.Team{}, nil)

		w := perform(setupRouter(svc), http.MethodGet, "/teams", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("remote failure", func(t *testing.T) {
		svc := new(mockTeamsService)
		svc.On("ListTeams", mock.Anything).Return(nil, errors.New("failed to fetch teams: connection refused"))

		w := perform(setupRouter(svc), http.MethodGet, "/teams", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "failed to fetch teams: connection refused", decodeError(t, w))
	})
}

func TestTeamsHandler_GetTeam(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(mockTeamsService)
		svc.On("GetTeam", mock.Anything, int64(42)).Return(&model.Team{ID: 42, Name: "Falcons"}, nil)

		w := perform(setupRouter(svc), http.MethodGet, "/teams/42", "")

		assert.Equal(t, http.StatusOK, w.Code)
		var team model.Team
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &team))
		assert.Equal(t, int64(42), team.ID)
		svc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		svc := new(mockTeamsService)
		svc.On("GetTeam", mock.Anything, int64(7)).Return(nil, model.ErrTeamNotFound)

		w := perform(setupRouter(svc), http.MethodGet, "/teams/7", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Team not found", decodeError(t, w))
	})

	t.Run("non numeric id", func(t *testing.T) {
		for _, id := range []string{"abc", "-1", "+1", "1.5", "99999999999999999999"} {
			svc := new(mockTeamsService)

			w := perform(setupRouter(svc), http.MethodGet, "/teams/"+id, "")

			assert.Equal(t, http.StatusNotFound, w.Code, id)
			assert.Equal(t, "Not found", decodeError(t, w))
			svc.AssertNotCalled(t, "GetTeam", mock.Anything, mock.Anything)
		}
	})

	t.Run("remote failure", func(t *testing.T) {
		svc := new(mockTeamsService)
		svc.On("GetTeam", mock.Anything, int64(1)).Return(nil, errors.New("(PGRST301) JWT expired"))

		w := perform(setupRouter(svc), http.MethodGet, "/teams/1", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "(PGRST301) JWT expired", decodeError(t, w))
	})
}

func TestTeamsHandler_CreateTeam(t *testing.T) {
	t.Run("coerces numeric strings", func(t *testing.T) {
		svc := new(mockTeamsService)
		expected := &model.CreateTeamRequest{Name: "Falcons", Coach: "J. Doe", Value: 150000000, Founded: 1995}
		svc.On("CreateTeam", mock.Anything, expected).Return([]model.Team{
			{ID: 10, Name: "Falcons", Coach: "J. Doe", Value: 150000000, Founded: 1995},
		}, nil)

		w := perform(setupRouter(svc), http.MethodPost, "/teams",
			`{"name":"Falcons","coach":"J. Doe","value":"150000000","founded":"1995"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Team created successfully", resp["message"])

		rows, ok := resp["team"].([]any)
		require.True(t, ok)
		require.Len(t, rows, 1)
		row := rows[0].(map[string]any)
		assert.Equal(t, 150000000.0, row["value"])
		assert.Equal(t, 1995.0, row["founded"])
		svc.AssertExpectations(t)
	})

	t.Run("no data", func(t *testing.T) {
		for _, body := range []string{"", "{}", "null", "   "} {
			svc := new(mockTeamsService)

			w := perform(setupRouter(svc), http.MethodPost, "/teams", body)

			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			assert.Equal(t, "No data provided", decodeError(t, w))
			svc.AssertNotCalled(t, "CreateTeam", mock.Anything, mock.Anything)
		}
	})

	t.Run("invalid data", func(t *testing.T) {
		svc := new(mockTeamsService)

		w := perform(setupRouter(svc), http.MethodPost, "/teams",
			`{"name":"Falcons","coach":"J. Doe","value":"a lot","founded":"1995"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid team data: value must be a number", decodeError(t, w))
		svc.AssertNotCalled(t, "CreateTeam", mock.Anything, mock.Anything)
	})

	t.Run("malformed json", func(t *testing.T) {
		svc := new(mockTeamsService)

		w := perform(setupRouter(svc), http.MethodPost, "/teams", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid team data: body is not valid JSON", decodeError(t, w))
	})

	t.Run("no rows returned", func(t *testing.T) {
		svc := new(mockTeamsService)
		svc.On("CreateTeam", mock.Anything, mock.Anything).Return(nil, model.ErrTeamNotCreated)

		w := perform(setupRouter(svc), http.MethodPost, "/teams",
			`{"name":"a","coach":"b","value":1,"founded":2000}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to create team", decodeError(t, w))
	})

	t.Run("remote failure", func(t *testing.T) {
		svc := new(mockTeamsService)
		svc.On("CreateTeam", mock.Anything, mock.Anything).Return(nil, errors.New("(23505) duplicate key"))

		w := perform(setupRouter(svc), http.MethodPost, "/teams",
			`{"name":"a","coach":"b","value":1,"founded":2000}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "(23505) duplicate key", decodeError(t, w))
	})
}

func TestHealthHandler_Check(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		svc := new(mockTeamsService)
		svc.On("HealthCheck", mock.Anything).Return(nil)

		w := perform(setupRouter(svc), http.MethodGet, "/api/health", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy","service":"teams-api"}`, w.Body.String())
	})

	t.Run("unhealthy", func(t *testing.T) {
		svc := new(mockTeamsService)
		svc.On("HealthCheck", mock.Anything).Return(errors.New("dial tcp: connection refused"))

		w := perform(setupRouter(svc), http.MethodGet, "/api/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t,
			`{"status":"unhealthy","service":"teams-api","error":"dial tcp: connection refused"}`,
			w.Body.String())
	})
}

func TestParseTeamID(t *testing.T) {
	id, ok := parseTeamID("0")
	assert.True(t, ok)
	assert.Equal(t, int64(0), id)

	id, ok = parseTeamID("123")
	assert.True(t, ok)
	assert.Equal(t, int64(123), id)

	for _, raw := range []string{"", " 1", "1a", "0x10", "-5"} {
		_, ok := parseTeamID(raw)
		assert.False(t, ok, raw)
	}
}

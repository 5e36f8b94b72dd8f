package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"teams-api/internal/application"
	"teams-api/internal/domain/model"
)

// APIレスポンスのメッセージ
const (
	msgNoData           = "No data provided"
	msgInvalidTeamData  = "Invalid team data: "
	msgTeamNotFound     = "Team not found"
	msgTeamNotCreated   = "Failed to create team"
	msgTeamCreated      = "Team created successfully"
	msgNotFound         = "Not found"
	msgMethodNotAllowed = "Method not allowed"
)

// TeamsHandler チームに関するHTTPハンドラー
type TeamsHandler struct {
	teamsService application.TeamsService
}

// NewTeamsHandler TeamsHandlerの新しいインスタンスを作成
func NewTeamsHandler(teamsService application.TeamsService) *TeamsHandler {
	return &TeamsHandler{
		teamsService: teamsService,
	}
}

// ListTeams GET /teams - チーム一覧を取得
func (h *TeamsHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamsService.ListTeams(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, teams)
}

// GetTeam GET /teams/:id - IDでチームを取得
func (h *TeamsHandler) GetTeam(c *gin.Context) {
	// 数値以外のIDはルートが存在しないものとして扱う
	id, ok := parseTeamID(c.Param("id"))
	if !ok {
		NotFound(c)
		return
	}

	team, err := h.teamsService.GetTeam(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, team)
}

// CreateTeam POST /teams - チームを作成
func (h *TeamsHandler) CreateTeam(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, model.ErrNoData)
		return
	}

	req, err := model.ParseCreateTeamRequest(body)
	if err != nil {
		respondError(c, err)
		return
	}

	created, err := h.teamsService.CreateTeam(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.CreateTeamResponse{
		Message: msgTeamCreated,
		Team:    created,
	})
}

// NotFound 未定義ルートのレスポンス
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, model.ErrorResponse{Error: msgNotFound})
}

// MethodNotAllowed 許可されていないメソッドのレスポンス
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, model.ErrorResponse{Error: msgMethodNotAllowed})
}

// respondError エラー種別をHTTPステータスに変換する
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *model.ValidationError
	switch {
	case errors.Is(err, model.ErrNoData):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msgNoData})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: msgInvalidTeamData + verr.Detail()})
	case errors.Is(err, model.ErrTeamNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: msgTeamNotFound})
	case errors.Is(err, model.ErrTeamNotCreated):
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: msgTeamNotCreated})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: err.Error()})
	}
}

// parseTeamID 10進数の非負整数のみ受け付ける
func parseTeamID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

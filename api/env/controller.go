package envapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-pcg/api/identity"
	"github.com/beka-birhanu/vinom-pcg/game"
	"github.com/beka-birhanu/vinom-pcg/game/grid"
	"github.com/beka-birhanu/vinom-pcg/game/obs"
	"github.com/beka-birhanu/vinom-pcg/game/rep"
	"github.com/beka-birhanu/vinom-pcg/game/tile"
	operators "github.com/beka-birhanu/vinom-pcg/identity"
	"github.com/beka-birhanu/vinom-pcg/service"
	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EnvController serves environment sessions.
type EnvController struct {
	sessions i.EnvSessionManager
	encoder  game.Encoder
}

// NewEnvController initializes an EnvController. The encoder serves clients that accept its
// content type; everyone else gets JSON.
func NewEnvController(sessions i.EnvSessionManager, encoder game.Encoder) (*EnvController, error) {
	if sessions == nil {
		return nil, errors.New("env controller needs a session manager")
	}
	return &EnvController{
		sessions: sessions,
		encoder:  encoder,
	}, nil
}

// RegisterPublic registers public routes.
func (ec *EnvController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (ec *EnvController) RegisterProtected(route *gin.RouterGroup) {
	envs := route.Group("/envs")
	{
		envs.POST("", ec.create)
		envs.GET("/:ID", ec.info)
		envs.DELETE("/:ID", ec.close)
		envs.POST("/:ID/reset", ec.reset)
		envs.POST("/:ID/step", ec.step)
		envs.POST("/:ID/agent", ec.setAgent)
		envs.GET("/:ID/stats", ec.stats)
		envs.GET("/:ID/observation", ec.observation)
		envs.GET("/:ID/path", ec.path)
		envs.GET("/:ID/border", ec.border)
	}
}

func (ec *EnvController) create(ctx *gin.Context) {
	owner, ok := identity.OperatorID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var request CreateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := ec.sessions.Create(ctx, owner, i.EnvConfig{
		Problem:          request.Problem,
		Representation:   request.Representation,
		Shape:            grid.Volume(request.Width, request.Height, request.Depth),
		Agents:           request.Agents,
		Spawn:            request.Spawn,
		Warp:             request.Warp,
		Holes:            request.Holes,
		RandomStart:      request.RandomStart,
		MazeStart:        request.MazeStart,
		ChangePercentage: request.ChangePercentage,
		MaxIterations:    request.MaxIterations,
		TracePath:        request.TracePath,
		UseQueue:         request.UseQueue,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, info)
}

func (ec *EnvController) info(ctx *gin.Context) {
	owner, id, ok := ids(ctx)
	if !ok {
		return
	}
	info, err := ec.sessions.Info(owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

func (ec *EnvController) close(ctx *gin.Context) {
	owner, id, ok := ids(ctx)
	if !ok {
		return
	}
	if err := ec.sessions.Close(owner, id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (ec *EnvController) reset(ctx *gin.Context) {
	owner, id, ok := ids(ctx)
	if !ok {
		return
	}

	var request ResetRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	var cells []tile.Type
	if request.Cells != nil {
		cells = make([]tile.Type, len(request.Cells))
		for n, c := range request.Cells {
			cells[n] = tile.Type(c)
		}
	}

	o, err := ec.sessions.Reset(ctx, owner, id, request.Seed, cells)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, o)
}

func (ec *EnvController) step(ctx *gin.Context) {
	owner, id, ok := ids(ctx)
	if !ok {
		return
	}

	var request StepRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := ec.sessions.Step(ctx, owner, id, rep.Action{Pos: request.Pos, Value: request.Value})
	if err != nil {
		writeError(ctx, err)
		return
	}

	if ec.wantsEncoded(ctx) {
		b, err := ec.encoder.MarshalStepResult(res)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "encoding step result"})
			return
		}
		ctx.Data(http.StatusOK, ec.encoder.ContentType(), b)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

func (ec *EnvController) setAgent(ctx *gin.Context) {
	owner, id, ok := ids(ctx)
	if !ok {
		return
	}

	var request AgentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ec.sessions.SetActiveAgent(owner, id, request.Agent); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (ec *EnvController) stats(ctx *gin.Context) {
	owner, id, ok := ids(ctx)
	if !ok {
		return
	}

	stats, err := ec.sessions.Stats(owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}

	if ec.wantsEncoded(ctx) {
		b, err := ec.encoder.MarshalStats(stats)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "encoding stats"})
			return
		}
		ctx.Data(http.StatusOK, ec.encoder.ContentType(), b)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// observation serves the map, cropped by ?window= and one-hot encoded with ?onehot=true.
func (ec *EnvController) observation(ctx *gin.Context) {
	owner, id, ok := ids(ctx)
	if !ok {
		return
	}

	window, err := strconv.Atoi(ctx.DefaultQuery("window", "0"))
	if err != nil || window < 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "window must be a non-negative integer"})
		return
	}

	o, err := ec.sessions.Observation(owner, id, window)
	if err != nil {
		writeError(ctx, err)
		return
	}

	if ctx.Query("onehot") != "true" {
		ctx.JSON(http.StatusOK, o)
		return
	}

	info, err := ec.sessions.Info(owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	m, err := grid.MapFromCells(o.Shape, o.Cells)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, OneHotResponse{
		Shape:    o.Shape,
		Channels: len(info.Tiles),
		Data:     obs.OneHot(m, len(info.Tiles)),
		Pos:      o.Pos,
	})
}

func (ec *EnvController) path(ctx *gin.Context) {
	owner, id, ok := ids(ctx)
	if !ok {
		return
	}
	p, err := ec.sessions.Path(owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if p == nil {
		p = []grid.Coord{}
	}
	ctx.JSON(http.StatusOK, PathResponse{Path: p})
}

func (ec *EnvController) border(ctx *gin.Context) {
	owner, id, ok := ids(ctx)
	if !ok {
		return
	}
	t, name, err := ec.sessions.Border(owner, id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, BorderResponse{Tile: int(t), Name: name})
}

func (ec *EnvController) wantsEncoded(ctx *gin.Context) bool {
	return ec.encoder != nil && ctx.GetHeader("Accept") == ec.encoder.ContentType()
}

// ids reads the operator and the environment ID, answering the request itself on failure.
func ids(ctx *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	owner, ok := identity.OperatorID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid environment id"})
		return uuid.Nil, uuid.Nil, false
	}
	return owner, id, true
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, operators.ErrOperatorNotFound):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrTooManyEnvs):
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrNotReset), errors.Is(err, game.ErrEpisodeEnd):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownProblem),
		errors.Is(err, grid.ErrConfig),
		errors.Is(err, grid.ErrOutOfBounds),
		errors.Is(err, rep.ErrInvalidAction):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

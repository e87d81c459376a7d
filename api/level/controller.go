// Package levelapi serves the archive of finished levels.
package levelapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-pcg/api/identity"
	"github.com/beka-birhanu/vinom-pcg/game"
	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultListLimit = 20

// LevelController lists and fetches an operator's archived levels.
type LevelController struct {
	levelRepo i.LevelRepo
}

// NewLevelController initializes a LevelController.
func NewLevelController(levelRepo i.LevelRepo) (*LevelController, error) {
	if levelRepo == nil {
		return nil, errors.New("level controller needs a level repository")
	}
	return &LevelController{levelRepo: levelRepo}, nil
}

// RegisterPublic registers public routes.
func (lc *LevelController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (lc *LevelController) RegisterProtected(route *gin.RouterGroup) {
	levels := route.Group("/levels")
	{
		levels.GET("", lc.list)
		levels.GET("/:ID", lc.byID)
	}
}

func (lc *LevelController) list(ctx *gin.Context) {
	owner, ok := identity.OperatorID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	limit, err := strconv.ParseInt(ctx.DefaultQuery("limit", strconv.Itoa(defaultListLimit)), 10, 64)
	if err != nil || limit <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	levels, err := lc.levelRepo.ByOwner(ctx, owner, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "listing levels"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"levels": levels})
}

func (lc *LevelController) byID(ctx *gin.Context) {
	owner, ok := identity.OperatorID(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return
	}

	level, err := lc.levelRepo.ByID(ctx, id)
	if errors.Is(err, game.ErrLevelNotFound) || (err == nil && level.Owner != owner) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "level not found"})
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "fetching level"})
		return
	}
	ctx.JSON(http.StatusOK, level)
}

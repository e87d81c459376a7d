package jobapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/gin-gonic/gin"
)

const queueTimeout = 2 * time.Second

// JobController manages the level-seed work queues.
type JobController struct {
	dispatcher i.Dispatcher
	problems   map[string]bool
}

// NewJobController initializes a JobController for the named problems.
func NewJobController(dispatcher i.Dispatcher, problems []string) (*JobController, error) {
	if dispatcher == nil {
		return nil, errors.New("job controller needs a dispatcher")
	}
	known := make(map[string]bool, len(problems))
	for _, p := range problems {
		known[p] = true
	}
	return &JobController{
		dispatcher: dispatcher,
		problems:   known,
	}, nil
}

// RegisterPublic registers public routes.
func (jc *JobController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (jc *JobController) RegisterProtected(route *gin.RouterGroup) {
	jobs := route.Group("/jobs")
	{
		jobs.POST("", jc.push)
		jobs.GET("/:problem", jc.pending)
	}
}

func (jc *JobController) push(ctx *gin.Context) {
	var request PushRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !jc.problems[request.Problem] {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown problem"})
		return
	}

	jobs := make([]i.Job, 0, len(request.Seeds)+request.Count)
	for _, seed := range request.Seeds {
		jobs = append(jobs, i.Job{Seed: seed, Label: request.Label})
	}
	for n := 0; n < request.Count; n++ {
		jobs = append(jobs, i.Job{Seed: request.FirstSeed + int64(n), Label: request.Label})
	}
	if len(jobs) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "no seeds given"})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, queueTimeout)
	defer cancel()
	if err := jc.dispatcher.Push(timeoutCtx, request.Problem, jobs...); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while queueing jobs"})
		return
	}

	ctx.JSON(http.StatusAccepted, QueueResponse{
		Problem: request.Problem,
		Queue:   jc.dispatcher.QueueKey(request.Problem),
		Pending: jc.dispatcher.Pending(timeoutCtx, request.Problem),
	})
}

func (jc *JobController) pending(ctx *gin.Context) {
	problem := ctx.Params.ByName("problem")
	if !jc.problems[problem] {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "unknown problem"})
		return
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, queueTimeout)
	defer cancel()
	ctx.JSON(http.StatusOK, QueueResponse{
		Problem: problem,
		Queue:   jc.dispatcher.QueueKey(problem),
		Pending: jc.dispatcher.Pending(timeoutCtx, problem),
	})
}

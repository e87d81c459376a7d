package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-pcg/api"
	envapi "github.com/beka-birhanu/vinom-pcg/api/env"
	api_i "github.com/beka-birhanu/vinom-pcg/api/i"
	"github.com/beka-birhanu/vinom-pcg/api/identity"
	jobapi "github.com/beka-birhanu/vinom-pcg/api/job"
	levelapi "github.com/beka-birhanu/vinom-pcg/api/level"
	"github.com/beka-birhanu/vinom-pcg/config"
	pb "github.com/beka-birhanu/vinom-pcg/game/pb_encoder"
	"github.com/beka-birhanu/vinom-pcg/game/problem"
	"github.com/beka-birhanu/vinom-pcg/infrastruture/repo"
	"github.com/beka-birhanu/vinom-pcg/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-pcg/infrastruture/token"
	"github.com/beka-birhanu/vinom-pcg/service"
	"github.com/beka-birhanu/vinom-pcg/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	envs              config.Config
	problems          map[string]problem.Config
	logger            *logrus.Logger
	appLogger         logrus.FieldLogger
	mongoClient       *mongo.Client
	redisClient       *redis.Client
	operatorRepo      *repo.OperatorRepo
	levelRepo         i.LevelRepo
	sortedQueue       i.SortedQueue
	dispatcher        i.Dispatcher
	jwtTokenizer      i.Tokenizer
	authService       i.Authenticator
	envSessionManager *service.EnvSessionManager
	authController    api_i.Controller
	envController     api_i.Controller
	jobController     api_i.Controller
	levelController   api_i.Controller
	router            *api.Router
)

func fatal(msg string, err error) {
	appLogger.WithError(err).Error(msg)
	os.Exit(1)
}

func initConfig() {
	var err error
	envs, err = config.Load()
	if err != nil {
		logrus.WithField("component", "APP").Fatalf("Loading configuration: %v", err)
	}

	logger, err = config.NewLogger(envs.LogLevel, os.Stdout)
	if err != nil {
		logrus.WithField("component", "APP").Fatalf("Creating logger: %v", err)
	}
	appLogger = logger.WithField("component", "APP")
	gin.SetMode(envs.GinMode)
}

func initProblems() {
	var err error
	problems, err = config.LoadProblems(envs.ProblemsFile)
	if err != nil {
		fatal("Loading problem definitions", err)
	}
	appLogger.WithField("problems", slices.Sorted(maps.Keys(problems))).Info("Problem definitions loaded")
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", envs.DBUser, envs.DBPassword, envs.DBHost, envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		fatal("Failed to connect to MongoDB", err)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		fatal("MongoDB ping failed", err)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     envs.RedisAddr,
		Password: envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		fatal("Redis ping failed", err)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(ctx context.Context) {
	operatorRepo = repo.NewOperatorRepo(mongoClient, envs.DBName, "operators")
	if err := operatorRepo.EnsureIndexes(ctx); err != nil {
		fatal("Creating operator indexes", err)
	}
	levelRepo = repo.NewLevelRepo(mongoClient, envs.DBName, "levels")
	appLogger.Info("Repositories initialized")
}

func initDispatcher() {
	var err error
	sortedQueue, err = sortedstorage.NewRedisSortedQueue(redisClient, envs.QueueTTLSeconds)
	if err != nil {
		fatal("Creating sorted queue", err)
	}

	dispatcher, err = service.NewDispatcher(sortedQueue, logger, nil)
	if err != nil {
		fatal("Creating dispatcher", err)
	}
	appLogger.Info("Dispatcher initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuth(operatorRepo, jwtTokenizer, logger)
	if err != nil {
		fatal("Creating auth service", err)
	}
	appLogger.Info("Auth service initialized")
}

func initSessionManager() {
	var err error
	envSessionManager, err = service.NewEnvSessionManager(&service.EnvSessionConfig{
		Problems:     problems,
		Dispatcher:   dispatcher,
		LevelRepo:    levelRepo,
		OperatorRepo: operatorRepo,
		Logger:       logger,
		MaxCells:     envs.MaxEnvCells,
	})
	if err != nil {
		fatal("Creating session manager", err)
	}
	appLogger.Info("Session manager initialized")
}

func initControllers() {
	var err error
	authController = identity.NewIdentityServer(authService)

	envController, err = envapi.NewEnvController(envSessionManager, &pb.Protobuf{})
	if err != nil {
		fatal("Creating env controller", err)
	}

	jobController, err = jobapi.NewJobController(dispatcher, slices.Collect(maps.Keys(problems)))
	if err != nil {
		fatal("Creating job controller", err)
	}

	levelController, err = levelapi.NewLevelController(levelRepo)
	if err != nil {
		fatal("Creating level controller", err)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, envController, jobController, levelController},
		AuthorizationMiddleware: identity.Authoriz(t),
		Logger:                  logger.WithField("component", "HTTP"),
	})
	appLogger.Info("Router initialized")
}

func main() {
	initConfig()
	initProblems()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	initRedis(ctx)
	defer redisClient.Close()

	initRepos(ctx)
	initDispatcher()
	initJWTTokenizer()
	initAuthService()
	initSessionManager()
	defer envSessionManager.CloseAll()
	initControllers()
	initRouter(jwtTokenizer)

	errs := make(chan error, 1)
	go func() {
		errs <- router.Run()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errs:
		appLogger.WithError(err).Error("Server stopped")
	case sig := <-stop:
		appLogger.WithField("signal", sig.String()).Info("Shutting down")
	}
}

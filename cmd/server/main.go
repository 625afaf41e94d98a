// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"skinview-go/internal/config"
	"skinview-go/internal/handler"
	"skinview-go/internal/middleware"
	"skinview-go/internal/pipeline"
	"skinview-go/internal/repository"
	"skinview-go/internal/service"
	"skinview-go/pkg/database"
	"skinview-go/pkg/embedding"
	"skinview-go/pkg/es"
	"skinview-go/pkg/kafka"
	"skinview-go/pkg/llm"
	"skinview-go/pkg/log"
	"skinview-go/pkg/storage"
	"skinview-go/pkg/token"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	// 3. 初始化数据库、Redis、对象存储和消息队列
	database.InitMySQL(cfg.Database.MySQL.DSN)
	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	storage.InitMinIO(cfg.MinIO)
	if err := es.InitES(cfg.Elasticsearch, cfg.Embedding.Dimensions); err != nil {
		log.Errorf("es 初始化失败 %s", err)
		return
	}
	kafka.InitProducer(cfg.Kafka)

	// 4. 初始化 Repository
	userRepo := repository.NewUserRepository(database.DB)
	surveyRepo := repository.NewSurveyRepository(database.DB)
	profileRepo := repository.NewProfileRepository(database.DB)
	productRepo := repository.NewProductRepository(database.DB)
	presetRepo := repository.NewPresetRepository(database.DB)
	sessionRepo := repository.NewSessionRepository(database.RDB)

	// 5. 初始化 Service (依赖注入)
	jwtManager := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpireHours, cfg.JWT.RefreshTokenExpireDays)
	embeddingClient := embedding.NewClient(cfg.Embedding)
	llmClient := llm.NewClient(cfg.LLM)
	userService := service.NewUserService(userRepo, surveyRepo, jwtManager)
	surveyService := service.NewSurveyService(surveyRepo)
	profileService := service.NewProfileService(profileRepo)
	searchService := service.NewSearchService(embeddingClient, es.ESClient, cfg.Elasticsearch.IndexName)
	genService := service.NewGenerationService(llmClient)
	chatService := service.NewChatService(profileService, searchService, genService, sessionRepo, presetRepo)
	routineService := service.NewRoutineService(presetRepo)
	productService := service.NewProductService(productRepo, userRepo, profileService, searchService, cfg.MinIO.BucketName)

	// 6. 初始化商品向量化管道 (Processor)
	processor := pipeline.NewProcessor(
		embeddingClient,
		cfg.Elasticsearch,
		cfg.Embedding,
		productRepo,
	)

	// 7. 启动后台 Kafka 消费者
	go kafka.StartConsumer(cfg.Kafka, processor)

	// 8. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New() // 使用 New() 创建一个不带默认中间件的引擎
	// 添加我们自定义的日志中间件和 Gin 的 Recovery 中间件
	r.Use(middleware.RequestLogger(), gin.Recovery())

	// 9. 注册路由
	apiV1 := r.Group("/api/v1")
	{
		// Auth 路由组
		auth := apiV1.Group("/auth")
		{
			auth.POST("/refreshToken", handler.NewUserHandler(userService).RefreshToken)
		}

		users := apiV1.Group("/users")
		{
			// 无需认证的路由 (公开访问)
			users.POST("/register", handler.NewUserHandler(userService).Register)
			users.POST("/login", handler.NewUserHandler(userService).Login)
			users.POST("/checkId", handler.NewUserHandler(userService).CheckID)
			users.POST("/checkEmail", handler.NewUserHandler(userService).CheckEmail)
			users.POST("/checkPhonenumber", handler.NewUserHandler(userService).CheckPhone)

			// 需要认证的路由 (仅限登录用户访问)
			authed := users.Group("/")
			authed.Use(middleware.AuthMiddleware(jwtManager, userService))
			{
				authed.GET("/me", handler.NewUserHandler(userService).GetUserInfo)
				authed.PUT("/password", handler.NewUserHandler(userService).UpdatePassword)
				authed.PUT("/address", handler.NewUserHandler(userService).UpdateAddress)
				authed.POST("/logout", handler.NewUserHandler(userService).Logout)
			}
		}

		// Survey 路由组，需要认证
		survey := apiV1.Group("/survey")
		survey.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			survey.POST("", handler.NewSurveyHandler(surveyService).Submit)
			survey.POST("/result", handler.NewSurveyHandler(surveyService).GetResult)
		}

		// Chat 路由组，需要认证
		chat := apiV1.Group("/chat")
		chat.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			chat.POST("/start", handler.NewChatHandler(chatService).StartChat)
			chat.POST("/message", handler.NewChatHandler(chatService).Message)
			chat.POST("/reset", handler.NewChatHandler(chatService).Reset)
		}

		// Product 路由组，需要认证
		products := apiV1.Group("/products")
		products.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			products.POST("/list", handler.NewProductHandler(productService).GetProducts)
			products.GET("/search", handler.NewProductHandler(productService).Search)
			products.POST("/recommendations", handler.NewProductHandler(productService).AdvancedRecommendations)
			products.POST("/index", handler.NewProductHandler(productService).Index)
		}

		// Routine 路由组，需要认证
		routine := apiV1.Group("/routine")
		routine.Use(middleware.AuthMiddleware(jwtManager, userService))
		{
			routine.POST("/list", handler.NewRoutineHandler(routineService).List)
			routine.POST("/delete", handler.NewRoutineHandler(routineService).Delete)
		}
	}

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 关闭 HTTP 服务器
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}

	// Kafka 消费者是一个循环，会在程序退出时自然结束，
	// 无需在停机逻辑中手动关闭。
	log.Info("服务已优雅关闭")
}

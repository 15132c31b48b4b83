package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/blogger-api-nosql/internal/application/auth"
	"github.com/blogger-api-nosql/internal/application/blog"
	"github.com/blogger-api-nosql/internal/application/comment"
	"github.com/blogger-api-nosql/internal/application/like"
	"github.com/blogger-api-nosql/internal/application/post"
	"github.com/blogger-api-nosql/internal/config"
	"github.com/blogger-api-nosql/internal/infrastructure/dynamo"
	jwtinfra "github.com/blogger-api-nosql/internal/infrastructure/jwt"
	snsinfra "github.com/blogger-api-nosql/internal/infrastructure/sns"
	"github.com/blogger-api-nosql/internal/notify"
	"github.com/joho/godotenv"
)

// Services bundles the application core handed to the transport layer.
type Services struct {
	Auth     auth.Service
	Likes    like.Service
	Blogs    blog.Service
	Posts    post.Service
	Comments comment.Service
	JWT      *jwtinfra.Provider
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider is optional; bearer-dependent features degrade without it.
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// Mail jobs go to an SNS topic; the dispatcher retries and rate-limits.
	var mailSender notify.Sender
	if s, err := snsinfra.NewPublisher(cfg); err == nil {
		mailSender = s
	} else {
		log.Fatalf("SNS publisher not available: %v", err)
	}
	dispatcher := notify.NewDispatcher(mailSender, notify.Options{
		QueueSize:   cfg.MailQueueSize,
		Attempts:    cfg.MailSendAttempts,
		PerSecond:   cfg.MailPerSecond,
		SendTimeout: cfg.MailSendTimeout,
	})

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	likeRepo := dynamo.NewLikeRepo(dynamoClient, cfg.DynamoTables.Likes)
	blogRepo := dynamo.NewBlogRepo(dynamoClient, cfg.DynamoTables.Blogs)
	postRepo := dynamo.NewPostRepo(dynamoClient, cfg.DynamoTables.Posts)
	commentRepo := dynamo.NewCommentRepo(dynamoClient, cfg.DynamoTables.Comments)

	likeSvc := like.NewService(likeRepo)
	services := &Services{
		Auth: auth.NewService(auth.ServiceDeps{
			UserRepo:        userRepo,
			Mail:            dispatcher,
			RecoveryCodeTTL: cfg.RecoveryCodeTTL,
		}),
		Likes:    likeSvc,
		Blogs:    blog.NewService(blogRepo),
		Posts:    post.NewService(postRepo, blogRepo, likeSvc),
		Comments: comment.NewService(commentRepo, postRepo, likeSvc),
		JWT:      jwtProvider,
	}
	slog.Info("identity & engagement core ready",
		"env", cfg.AppEnv,
		"bearerTokens", services.JWT != nil,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down, draining notification queue")
	dispatcher.Close()
	slog.Info("stopped")
}

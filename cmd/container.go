package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/talentops/funnel/intake/applicant"
	"github.com/talentops/funnel/intake/applicant/applicantapi"
	"github.com/talentops/funnel/intake/applicant/applicantinfra"
	"github.com/talentops/funnel/intake/applicant/applicantsrv"
	"github.com/talentops/funnel/internal/ai/embeddings"
	"github.com/talentops/funnel/pkg/logx"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB       *sqlx.DB
	Redis    *redis.Client
	S3Client *s3.Client
	Sheets   *sheets.Service
	Drive    *drive.Service

	// Services
	IntakeService *applicantsrv.IntakeService
	SyncQueue     applicant.SyncQueue

	// API Handlers
	ApplicantHandlers *applicantapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	ctx := context.Background()

	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(ctx).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. Google API clients (credentials come from the environment via
	// GOOGLE_APPLICATION_CREDENTIALS)
	sheetsSvc, err := sheets.NewService(ctx, option.WithScopes(sheets.SpreadsheetsReadonlyScope))
	if err != nil {
		logx.Fatalf("Failed to create Sheets client: %v", err)
	}
	c.Sheets = sheetsSvc

	driveSvc, err := drive.NewService(ctx, option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		logx.Fatalf("Failed to create Drive client: %v", err)
	}
	c.Drive = driveSvc

	// 4. AWS S3 Configuration (optional, archives extracted materials)
	if os.Getenv("AWS_BUCKET") != "" {
		awsRegion := os.Getenv("AWS_REGION")
		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
	}
}

func (c *Container) initServices() {
	// --- Infra Adapters ---
	repo := applicantinfra.NewPostgresApplicantRepository(c.DB)
	rows := applicantinfra.NewGoogleSheetsSource(c.Sheets)
	documents := applicantinfra.NewDriveDocumentSource(c.Drive)
	seen := applicantinfra.NewRedisSeenStore(c.Redis)
	c.SyncQueue = applicantinfra.NewRedisSyncQueue(c.Redis, "funnel:sync")

	var notifier applicant.Notifier
	if webhookURL := os.Getenv("NOTIFY_WEBHOOK_URL"); webhookURL != "" {
		notifier = applicantinfra.NewWebhookNotifier(webhookURL)
	} else {
		logx.Warn("NOTIFY_WEBHOOK_URL is not set, new-applicant notifications disabled")
	}

	var embedder applicant.Embedder
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		embedder = embeddings.NewGenerator(apiKey)
	} else {
		logx.Warn("OPENAI_API_KEY is not set, similarity search disabled")
	}

	var archiver applicant.Archiver
	if bucket := os.Getenv("AWS_BUCKET"); bucket != "" && c.S3Client != nil {
		archiver = applicantinfra.NewS3Archiver(c.S3Client, bucket, "materials")
	}

	// --- Domain Services ---
	c.IntakeService = applicantsrv.NewIntakeService(
		rows,
		repo,
		notifier,
		seen,
		embedder,
		archiver,
		c.SyncQueue,
		documents,
	)

	// --- Handlers ---
	c.ApplicantHandlers = applicantapi.NewHandlers(c.IntakeService)
}

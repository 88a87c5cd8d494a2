package main

import (
	"context"
	"database/sql"
	"fmt"
	stdhttp "net/http"
	"os"
	"time"

	http "github.com/alfaSophia29/CyBerPhone1.0/internal/interface/http"
	"github.com/alfaSophia29/CyBerPhone1.0/internal/logger"
	"github.com/alfaSophia29/CyBerPhone1.0/internal/store"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

func main() {
	_ = godotenv.Load()
	logger.Init()
	defer logger.Log.Sync()
	log := logger.Sugar()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	db, isMySQL, err := openDatabase()
	if err != nil {
		log.Fatalw("database open failed", "error", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalw("database ping failed", "error", err)
	}

	if err := store.CreateTables(db, isMySQL); err != nil {
		log.Fatalw("schema setup failed", "error", err)
	}

	st := store.New(db, isMySQL)

	if err := seedIfEmpty(st); err != nil {
		log.Fatalw("seeding failed", "error", err)
	}
	// Denormalized rating columns are recomputed at boot so a crash between a
	// rating insert and its rollup never leaves them stale.
	if err := st.SyncProductRatings(); err != nil {
		log.Fatalw("rating sync failed", "error", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me"
		log.Warnw("JWT_SECRET not set, using development secret")
	}
	authManager := http.NewAuthManager(jwtSecret)

	handler := http.NewHTTPHandler(st, authManager)

	if projectID := os.Getenv("GOOGLE_CLOUD_PROJECT"); projectID != "" || os.Getenv("GOOGLE_CLOUD_API_KEY") != "" {
		location := os.Getenv("GOOGLE_CLOUD_LOCATION")
		if location == "" {
			location = "us-central1"
		}
		aiManager := http.NewAIManager(projectID, location)
		if err := aiManager.Initialize(context.Background()); err != nil {
			log.Warnw("AI client init failed, suggestion endpoints disabled", "error", err)
		} else {
			handler.SetAIManager(aiManager)
		}
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(stdhttp.StatusOK)
			return
		}
		c.Next()
	})
	router.Use(http.NewRateLimiter(300, time.Minute).Middleware())

	handler.RegisterRoutes(router)

	log.Infow("server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalw("server failed to start", "error", err)
	}
}

// openDatabase opens MySQL when MYSQL_DATABASE is configured, otherwise a
// local sqlite file. The sqlite pool is pinned to one connection so writes
// never race the file lock.
func openDatabase() (*sql.DB, bool, error) {
	if dbName := os.Getenv("MYSQL_DATABASE"); dbName != "" {
		dbUser := os.Getenv("MYSQL_USER")
		dbPass := os.Getenv("MYSQL_PASSWORD")
		dbHost := os.Getenv("MYSQL_HOST")
		if dbHost == "" {
			dbHost = "127.0.0.1"
		}
		dbPort := os.Getenv("MYSQL_PORT")
		if dbPort == "" {
			dbPort = "3306"
		}
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local",
			dbUser, dbPass, dbHost, dbPort, dbName)
		db, err := sql.Open("mysql", dsn)
		return db, true, err
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "./cyberphone.db"
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, false, err
	}
	db.SetMaxOpenConns(1)
	return db, false, nil
}

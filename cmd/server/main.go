package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	handler "github.com/healcome/fitness/internal/adapters/handler/http"
	repo "github.com/healcome/fitness/internal/adapters/repository/postgres"
	"github.com/healcome/fitness/internal/core/services"
	"github.com/healcome/fitness/internal/core/token"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 2 * time.Hour
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	userRepo := repo.NewUserRepository(db)
	sessionRepo := repo.NewSessionRepository(db)
	gymRepo := repo.NewGymRepository(db)
	routineRepo := repo.NewRoutineRepository(db)
	logRepo := repo.NewWorkoutLogRepository(db)

	codec := token.NewCodec([]byte(jwtSecret), accessTTL)

	authSvc := services.NewAuthService(userRepo, sessionRepo, codec)
	userSvc := services.NewUserService(userRepo)
	gymSvc := services.NewGymService(gymRepo)
	routineSvc := services.NewRoutineService(routineRepo, gymRepo, logRepo)
	logSvc := services.NewWorkoutLogService(logRepo)

	cookies := handler.NewCookieManager(os.Getenv("COOKIE_SECURE") == "true", accessTTL, refreshTTL)

	router := handler.NewHandler(
		handler.NewAuthHandler(authSvc, cookies),
		handler.NewAuthMiddleware(authSvc, cookies),
		handler.NewGymHandler(gymSvc),
		handler.NewRoutineHandler(routineSvc),
		handler.NewWorkoutLogHandler(logSvc),
		handler.NewUserHandler(userSvc),
	)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	server := &stdhttp.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server is running on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	dbName, user, password, host, port := dbConfig()
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}

func dbConfig() (dbName string, user string, password string, host string, port string) {
	dbName = os.Getenv("POSTGRES_DB")
	user = os.Getenv("POSTGRES_USER")
	password = os.Getenv("POSTGRES_PASSWORD")
	host = os.Getenv("POSTGRES_HOST")
	port = os.Getenv("POSTGRES_PORT")
	return
}

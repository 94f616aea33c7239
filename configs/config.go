package config

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/joho/godotenv"
)

// LoadEnv loads ./.env when present. A missing file is fine, real environment
// variables are used instead.
func LoadEnv(service string) {
	log.Infof("%s service configuration and env variables loading started ...", service)
	err := godotenv.Load("./.env")
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("no .env file, using process environment")
			return
		}
		log.Fatalf("Error loading .env file: %s", err)
	}

	log.Info(".env file loaded.")
}

func CreateUniqueInstance(service string) string {
	id, err := uuid.NewV4() // instance identifier
	if err != nil {
		log.Errorf("error generating instanceId: %s", err)
		os.Exit(1)
	}
	log.Infof(service+" service with Instance ID: %s is ready", id)
	return id.String()
}

// CORS allows a single origin with credentials, which is why the origin can never be "*".
func CORS(origin string) *cors.Cors {
	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Content-Encoding", "Accept"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return corsOptions
}

// RateLimit limits requests per IP per minute. A limit of 0 disables it.
func RateLimit(limit int) func(next http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(limit, 1*time.Minute)
}

// ParseLevel reads LOG_LEVEL style values, defaulting to info.
func ParseLevel(value string) (log.Level, bool) {
	if strings.TrimSpace(value) == "" {
		return log.InfoLevel, true
	}
	level, err := log.ParseLevel(value)
	if err != nil {
		return log.InfoLevel, false
	}
	return level, true
}

// Logging configures the package level logrus logger. With LOG_DIR set the
// output goes to <LOG_DIR>/<service>.log, otherwise to stderr.
func Logging(service string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	level, ok := ParseLevel(os.Getenv("LOG_LEVEL"))
	log.SetLevel(level)
	if !ok {
		log.Warnf("invalid LOG_LEVEL %q, using info", os.Getenv("LOG_LEVEL"))
	}

	logFolder := os.Getenv("LOG_DIR")
	if logFolder == "" {
		log.SetOutput(os.Stderr)
		return
	}

	out, err := openLogFile(logFolder, service)
	if err != nil {
		log.Warnf("unable to open log file, logging to stderr: %s", err)
		return
	}

	log.SetOutput(out)
	log.Infof("log to file started for service: %s", service)
}

func openLogFile(logFolder, service string) (io.Writer, error) {
	if err := os.MkdirAll(logFolder, 0755); err != nil {
		return nil, err
	}

	logFilePath := filepath.Join(logFolder, service+".log")

	return os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// CustomLoggerMiddleware logs method, path, status and latency of every request.
func CustomLoggerMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				log.WithFields(log.Fields{
					"request_id": middleware.GetReqID(r.Context()),
				}).Infof("%s %s %s %d %s %s",
					r.Method,
					r.RequestURI,
					r.RemoteAddr,
					status,
					http.StatusText(status),
					time.Since(start),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

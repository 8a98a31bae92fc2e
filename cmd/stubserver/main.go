package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/jecortes2304/simple-todo/logging"
	"github.com/jecortes2304/simple-todo/models"
	"github.com/jecortes2304/simple-todo/stubserver"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	logging.Init("stubserver", "logs/stubserver.log")

	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting stub server...")
	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	store := stubserver.NewStore()
	seed(store)

	server := stubserver.New(store)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Stub server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, enableCORS(server.Router())); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}

// seed fills the store with enough fixture data to page through.
func seed(store *stubserver.Store) {
	store.SeedUser("admin", "admin@example.com", models.RoleAdmin)
	store.SeedUser("demo", "demo@example.com", models.RoleUser)

	for i := 1; i <= 3; i++ {
		project := store.SeedProject(
			fmt.Sprintf("Sample project %d", i),
			fmt.Sprintf("Fixture project number %d for local development", i),
		)
		statuses := []models.TaskStatus{
			models.StatusPending,
			models.StatusOngoing,
			models.StatusCompleted,
			models.StatusBlocked,
			models.StatusCancelled,
		}
		for j := 1; j <= 12; j++ {
			store.SeedTask(
				project.ID,
				fmt.Sprintf("Task %d of project %d", j, i),
				fmt.Sprintf("Fixture task %d under sample project %d", j, i),
				statuses[j%len(statuses)],
			)
		}
	}
}

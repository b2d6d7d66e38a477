package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/louisbranch/taskflow/internal/services/shared/i18nhttp"
	"github.com/louisbranch/taskflow/internal/services/taskflow/auth"
	"github.com/louisbranch/taskflow/internal/services/taskflow/tasks"
)

// Config wires the API handlers.
type Config struct {
	Auth  *auth.Service
	Tasks *tasks.Service
	// StaticDir, when set, is served for every path the API does not own.
	StaticDir string
	// CORSOrigin is the allowed cross-origin caller. Empty disables CORS headers.
	CORSOrigin string
}

type handler struct {
	auth  *auth.Service
	tasks *tasks.Service
}

// NewHandler builds the routed API with its middleware chain.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Auth == nil {
		return nil, fmt.Errorf("auth service is required")
	}
	if cfg.Tasks == nil {
		return nil, fmt.Errorf("task service is required")
	}
	h := &handler{auth: cfg.Auth, tasks: cfg.Tasks}

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.HandleFunc("/up", handleUp).Methods(http.MethodGet, http.MethodHead)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/cadastro", h.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", h.handleLogin).Methods(http.MethodPost)

	protected := api.PathPrefix("/tarefas").Subrouter()
	protected.Use(mux.MiddlewareFunc(auth.Guard(cfg.Auth.Tokens(), writeError)))
	protected.HandleFunc("", h.handleListTasks).Methods(http.MethodGet)
	protected.HandleFunc("", h.handleCreateTask).Methods(http.MethodPost)
	protected.HandleFunc("/{id}", h.handleUpdateTask).Methods(http.MethodPut)
	protected.HandleFunc("/{id}", h.handleDeleteTask).Methods(http.MethodDelete)

	if dir := strings.TrimSpace(cfg.StaticDir); dir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(dir))).Methods(http.MethodGet, http.MethodHead)
	}

	var root http.Handler = r
	root = i18nhttp.Middleware(root)
	root = withCORS(cfg.CORSOrigin, root)
	root = withRecover(root)
	root = withLogging(root)
	root = withTracing(root)
	root = withRequestID(root)
	return root, nil
}

func handleUp(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/louisbranch/taskflow/internal/platform/requestctx"
	"github.com/louisbranch/taskflow/internal/services/taskflow/storage"
	"github.com/louisbranch/taskflow/internal/services/taskflow/task"
)

type taskResponse struct {
	ID        int64  `json:"id"`
	Titulo    string `json:"titulo"`
	Status    string `json:"status"`
	UsuarioID int64  `json:"usuario_id"`
}

type createTaskRequest struct {
	Titulo string `json:"titulo"`
	Title  string `json:"title"`
}

type updateTaskRequest struct {
	Status string `json:"status"`
}

func toTaskResponse(t task.Task) taskResponse {
	return taskResponse{
		ID:        t.ID,
		Titulo:    t.Title,
		Status:    string(t.Status),
		UsuarioID: t.OwnerID,
	}
}

func (h *handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	items, err := h.tasks.List(r.Context(), requestctx.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp := make([]taskResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toTaskResponse(item))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	created, err := h.tasks.Create(r.Context(), requestctx.UserIDFromContext(r.Context()), firstNonEmpty(req.Titulo, req.Title))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTaskResponse(created))
}

func (h *handler) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskIDFromPath(r)
	if !ok {
		writeError(w, r, storage.ErrNotFound)
		return
	}
	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.tasks.UpdateStatus(r.Context(), requestctx.UserIDFromContext(r.Context()), taskID, task.Status(req.Status)); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, "api.status_updated", 0)
}

func (h *handler) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := taskIDFromPath(r)
	if !ok {
		writeError(w, r, storage.ErrNotFound)
		return
	}
	if err := h.tasks.Delete(r.Context(), requestctx.UserIDFromContext(r.Context()), taskID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, r, "api.task_deleted", 0)
}

// taskIDFromPath parses the {id} segment. Non-numeric ids are reported as
// missing rows.
func taskIDFromPath(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kasuboski/arrqueue/pkg/actions"
	"github.com/kasuboski/arrqueue/pkg/logger"
	"github.com/kasuboski/arrqueue/pkg/manager"
	"github.com/kasuboski/arrqueue/pkg/queue"
	"go.uber.org/zap"
)

// ListQueue returns the grouped queue rows
func (s Server) ListQueue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		req, err := parseRowsRequest(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		rows, err := s.manager.Rows(r.Context(), req)
		if err != nil {
			log.Error("failed to list queue", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: rows})
	}
}

// DiagnoseRecord explains a single queue record
func (s Server) DiagnoseRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		id, err := strconv.ParseInt(vars["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		key := queue.FormatKey(queue.Service(vars["service"]), vars["instance"], id)
		diagnosis, err := s.manager.Diagnose(r.Context(), key)
		if errors.Is(err, queue.ErrRecordNotFound) {
			writeErrorResponse(w, http.StatusNotFound, err)
			return
		}
		if err != nil {
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: diagnosis})
	}
}

// RefreshQueue refetches every instance
func (s Server) RefreshQueue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		err := s.manager.Refresh(r.Context())
		if err != nil {
			log.Warn("failed to refresh queue", zap.Error(err))
			writeErrorResponse(w, http.StatusBadGateway, err)
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: "ok"})
	}
}

// ExecuteAction runs a bulk action on the selected record keys
func (s Server) ExecuteAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		var req manager.ActionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		if err := s.validate.Struct(req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		for _, key := range req.Keys {
			if _, _, _, err := queue.ParseKey(key); err != nil {
				writeErrorResponse(w, http.StatusBadRequest, err)
				return
			}
		}

		run, err := s.manager.Execute(r.Context(), req)
		if err != nil {
			status := actionErrorStatus(err)
			log.Error("action failed", zap.String("action", string(req.Action)), zap.String("run", run.ID.String()), zap.Error(err))
			writeResponse(w, status, GenericResponse{Error: err.Error(), Response: run})
			return
		}

		writeResponse(w, http.StatusOK, GenericResponse{Response: run})
	}
}

func actionErrorStatus(err error) int {
	switch {
	case errors.Is(err, actions.ErrNoDownloadID):
		return http.StatusUnprocessableEntity
	case errors.Is(err, actions.ErrUnknownAction):
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// Package student contains the HTTP handlers for the student resource.
//
// Each handler is a factory: it receives its dependencies once at route
// registration and returns the http.HandlerFunc that runs per request.
// Handlers depend on storage.Storage, never on a concrete backend, and
// translate the storage sentinels into status codes at this boundary —
// nothing below ever writes an HTTP response.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/sims/internal/storage"
	"github.com/aanand-mishra/sims/internal/types"
	"github.com/aanand-mishra/sims/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// Client-facing messages, kept stable because the UI matches on them.
const (
	MsgDuplicateID = "Student ID already exists."
	MsgNotFound    = "Student not found."
)

// New handles POST /api/students: decode, validate all seven fields,
// insert. 201 with the created record, 400 on a missing field or a
// duplicate id, 500 on store failure.
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var st types.Student
		err := json.NewDecoder(r.Body).Decode(&st)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		if err := validator.New().Struct(st); err != nil {
			validateErrs := err.(validator.ValidationErrors)
			response.WriteJSON(w, http.StatusBadRequest,
				response.ValidationError(validateErrs))
			return
		}

		created, err := store.CreateStudent(st)
		if errors.Is(err, storage.ErrDuplicateID) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New(MsgDuplicateID)))
			return
		}
		if err != nil {
			slog.Error("error creating student",
				slog.String("id", st.ID),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetList handles GET /api/students: the full roster as a JSON array,
// [] (not null) when the store is empty. Filtering, sorting, and
// pagination are the caller's business — this endpoint always returns
// everything.
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.ListStudents()
		if err != nil {
			slog.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// Update handles PUT /api/students/{id}: merge the provided fields into
// the existing record. The id itself is immutable. 200 with the updated
// record, 404 when the id does not exist.
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		var st types.Student
		err := json.NewDecoder(r.Body).Decode(&st)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		updated, err := store.UpdateStudent(id, st)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound,
				response.GeneralError(errors.New(MsgNotFound)))
			return
		}
		if err != nil {
			slog.Error("error updating student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /api/students/{id}. 200 {"success":true} on
// removal, 404 when the id does not exist.
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		err := store.DeleteStudent(id)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound,
				response.GeneralError(errors.New(MsgNotFound)))
			return
		}
		if err != nil {
			slog.Error("error deleting student",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

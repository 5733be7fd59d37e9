// Package testserver runs an in-process AlumniConnect API for integration
// tests: the uniform envelope over httptest, backed by the same memory
// collections the mock data source uses.
package testserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alumniconnect/client-go/internal/api"
	"github.com/alumniconnect/client-go/internal/collection"
	"github.com/alumniconnect/client-go/internal/domain/event"
	"github.com/alumniconnect/client-go/internal/source"
	"github.com/alumniconnect/client-go/internal/source/memory"
)

type TestServer struct {
	Server *httptest.Server
	Events *memory.Collection[event.Event]
	RSVPs  *event.MemoryRSVP
}

// New starts a server seeding the events collection. The server shuts down
// with the test.
func New(t *testing.T, seed []event.Event) *TestServer {
	t.Helper()

	events := memory.New(seed, event.SearchFields(),
		memory.WithExactKeys[event.Event](event.ExactKeys()...))
	rsvps := event.NewMemoryRSVP()

	mux := http.NewServeMux()
	MountCollection(mux, "/api/events", events)
	mountRSVP(mux, rsvps)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &TestServer{Server: server, Events: events, RSVPs: rsvps}
}

// BaseURL is the API root the REST clients should be pointed at.
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL + "/api"
}

// MountCollection registers the full entity surface for one collection:
// list, get, create, update, delete, bulk, and status endpoints.
func MountCollection[T source.Entity[T]](mux *http.ServeMux, prefix string, col *memory.Collection[T]) {
	mux.HandleFunc("GET "+prefix, func(w http.ResponseWriter, r *http.Request) {
		page, limit, criteria := listParams(r)
		result, err := col.List(r.Context(), page, limit, criteria)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, api.ListResponse[T]{
			Success: true,
			Data:    result.Items,
			Pagination: &api.Pagination{
				Page:       result.Page,
				Limit:      result.Limit,
				Total:      result.Total,
				TotalPages: result.TotalPages,
			},
		})
	})

	mux.HandleFunc("POST "+prefix, func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		created, err := col.Create(r.Context(), item)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, api.Response[T]{Success: true, Data: created})
	})

	mux.HandleFunc("POST "+prefix+"/bulk", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Operation string   `json:"operation"`
			IDs       []string `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		affected, err := col.Bulk(r.Context(), source.BulkOp(req.Operation), req.IDs)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, api.Response[map[string]int]{
			Success: true,
			Data:    map[string]int{"affected": affected},
		})
	})

	mux.HandleFunc("GET "+prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		item, err := col.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, api.Response[T]{Success: true, Data: item})
	})

	mux.HandleFunc("PUT "+prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		var item T
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		updated, err := col.Update(r.Context(), r.PathValue("id"), item)
		if err != nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, api.Response[T]{Success: true, Data: updated})
	})

	mux.HandleFunc("DELETE "+prefix+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := col.Delete(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, api.Response[any]{Success: true})
	})

	mux.HandleFunc("PATCH "+prefix+"/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		updated, err := col.SetStatus(r.Context(), r.PathValue("id"), req.Status)
		if err != nil {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, api.Response[T]{Success: true, Data: updated})
	})
}

func mountRSVP(mux *http.ServeMux, rsvps *event.MemoryRSVP) {
	mux.HandleFunc("POST /api/events/{id}/rsvp", func(w http.ResponseWriter, r *http.Request) {
		var req event.RSVPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.EventID = r.PathValue("id")
		if err := rsvps.Register(r.Context(), req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, api.Response[any]{Success: true, Message: "registered"})
	})

	mux.HandleFunc("DELETE /api/events/{id}/rsvp/{userId}", func(w http.ResponseWriter, r *http.Request) {
		if err := rsvps.Cancel(r.Context(), r.PathValue("id"), r.PathValue("userId")); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, api.Response[any]{Success: true, Message: "cancelled"})
	})
}

func listParams(r *http.Request) (page, limit int, criteria collection.Criteria) {
	page, limit = 1, 20
	criteria = collection.Criteria{}
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "page":
			if n, err := strconv.Atoi(values[0]); err == nil {
				page = n
			}
		case "limit":
			if n, err := strconv.Atoi(values[0]); err == nil {
				limit = n
			}
		default:
			criteria[key] = values[0]
		}
	}
	return page, limit, criteria
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Response[any]{Success: false, Error: message})
}

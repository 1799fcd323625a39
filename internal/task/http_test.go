// Copyright (c) 2026 TaskFlow. All rights reserved.
// Author: carljohntruya.art@gmail.com

package task_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/ctxutil"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/platform/sec"
	"github.com/carljohntruya-art/TaskFlow2.0-server/internal/task"
)

// identityGuard stubs the authorization pipeline: requests carrying the
// test header get the mapped identity, everything else stays anonymous.
// Token verification itself is covered by the middleware tests.
func identityGuard(identities map[string]*sec.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if identity, ok := identities[request.Header.Get("X-Test-Identity")]; ok {
				request = request.WithContext(ctxutil.WithIdentity(request.Context(), identity))
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func newTaskServer(t *testing.T) *httptest.Server {
	t.Helper()

	guard := identityGuard(map[string]*sec.Identity{
		owner.ID:    owner,
		intruder.ID: intruder,
	})
	handler := task.NewHandler(task.NewService(newMemoryRepository()), guard)

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"statusCode"`
}

func send(t *testing.T, server *httptest.Server, method, path, asIdentity, body string) (*http.Response, envelope) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	request, err := http.NewRequest(method, server.URL+path, reader)
	require.NoError(t, err)
	if asIdentity != "" {
		request.Header.Set("X-Test-Identity", asIdentity)
	}

	response, err := server.Client().Do(request)
	require.NoError(t, err)
	t.Cleanup(func() { _ = response.Body.Close() })

	var parsed envelope
	require.NoError(t, json.NewDecoder(response.Body).Decode(&parsed))
	return response, parsed
}

func createdTask(t *testing.T, server *httptest.Server, asIdentity, body string) *task.Task {
	t.Helper()
	response, parsed := send(t, server, http.MethodPost, "/", asIdentity, body)
	require.Equal(t, http.StatusCreated, response.StatusCode)

	var created task.Task
	require.NoError(t, json.Unmarshal(parsed.Data, &created))
	return &created
}

/*
TestTaskHandler_Create covers creation through the transport layer,
including defaulting and the due-date wire format.
*/
func TestTaskHandler_Create(t *testing.T) {
	server := newTaskServer(t)

	response, body := send(t, server, http.MethodPost, "/", owner.ID,
		`{"title":"Prepare the demo","priority":"high","dueDate":"2026-09-15"}`)

	assert.Equal(t, http.StatusCreated, response.StatusCode)
	assert.True(t, body.Success)
	assert.Equal(t, "Task created successfully", body.Message)

	var created task.Task
	require.NoError(t, json.Unmarshal(body.Data, &created))
	assert.Equal(t, "Prepare the demo", created.Title)
	assert.Equal(t, task.StatusTodo, created.Status)
	assert.Equal(t, task.PriorityHigh, created.Priority)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2026-09-15", created.DueDate.Format("2006-01-02"))
	assert.Equal(t, owner.ID, created.UserID)
}

/*
TestTaskHandler_Create_Validation rejects bad input before the service runs.
*/
func TestTaskHandler_Create_Validation(t *testing.T) {
	server := newTaskServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing_title", `{"status":"todo"}`},
		{"title_too_long", `{"title":"` + strings.Repeat("x", 300) + `"}`},
		{"bad_status", `{"title":"ok","status":"archived"}`},
		{"bad_priority", `{"title":"ok","priority":"urgent"}`},
		{"bad_due_date", `{"title":"ok","dueDate":"15/09/2026"}`},
		{"malformed_json", `{"title":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response, body := send(t, server, http.MethodPost, "/", owner.ID, tt.body)
			assert.Equal(t, http.StatusBadRequest, response.StatusCode)
			assert.False(t, body.Success)
		})
	}
}

/*
TestTaskHandler_Unauthenticated verifies every route requires an identity.
*/
func TestTaskHandler_Unauthenticated(t *testing.T) {
	server := newTaskServer(t)

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/", `{"title":"x"}`},
		{http.MethodGet, "/", ""},
		{http.MethodPatch, "/0191f1e4-5e1a-7cc3-9f6a-3d1b2c4d5e6f", `{}`},
		{http.MethodDelete, "/0191f1e4-5e1a-7cc3-9f6a-3d1b2c4d5e6f", ""},
	}

	for _, route := range routes {
		response, body := send(t, server, route.method, route.path, "", route.body)
		assert.Equal(t, http.StatusUnauthorized, response.StatusCode, route.method+" "+route.path)
		assert.False(t, body.Success)
	}
}

/*
TestTaskHandler_ListScoping verifies the list endpoint only exposes the
caller's own tasks.
*/
func TestTaskHandler_ListScoping(t *testing.T) {
	server := newTaskServer(t)

	createdTask(t, server, owner.ID, `{"title":"mine"}`)
	createdTask(t, server, intruder.ID, `{"title":"theirs"}`)

	_, body := send(t, server, http.MethodGet, "/", owner.ID, "")

	var listed []*task.Task
	require.NoError(t, json.Unmarshal(body.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "mine", listed[0].Title)
}

/*
TestTaskHandler_Update covers the partial-update path plus the 403/404
distinction through the transport layer.
*/
func TestTaskHandler_Update(t *testing.T) {
	server := newTaskServer(t)
	created := createdTask(t, server, owner.ID, `{"title":"original"}`)

	t.Run("owner_updates_status_only", func(t *testing.T) {
		response, body := send(t, server, http.MethodPatch, "/"+created.ID, owner.ID,
			`{"status":"done"}`)
		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, "Task updated successfully", body.Message)

		var updated task.Task
		require.NoError(t, json.Unmarshal(body.Data, &updated))
		assert.Equal(t, task.StatusDone, updated.Status)
		assert.Equal(t, "original", updated.Title)
	})

	t.Run("foreign_task_is_403", func(t *testing.T) {
		response, body := send(t, server, http.MethodPatch, "/"+created.ID, intruder.ID,
			`{"title":"hijacked"}`)
		assert.Equal(t, http.StatusForbidden, response.StatusCode)
		assert.Equal(t, "Unauthorized to update this task", body.Message)
	})

	t.Run("unknown_task_is_404", func(t *testing.T) {
		response, _ := send(t, server, http.MethodPatch,
			"/0191f1e4-5e1a-7cc3-9f6a-3d1b2c4d5e6f", owner.ID, `{"title":"x"}`)
		assert.Equal(t, http.StatusNotFound, response.StatusCode)
	})

	t.Run("invalid_id_is_400", func(t *testing.T) {
		response, _ := send(t, server, http.MethodPatch, "/not-a-uuid", owner.ID, `{"title":"x"}`)
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})
}

/*
TestTaskHandler_Delete covers deletion including the ownership wall.
*/
func TestTaskHandler_Delete(t *testing.T) {
	server := newTaskServer(t)
	created := createdTask(t, server, owner.ID, `{"title":"short lived"}`)

	t.Run("foreign_task_is_403", func(t *testing.T) {
		response, _ := send(t, server, http.MethodDelete, "/"+created.ID, intruder.ID, "")
		assert.Equal(t, http.StatusForbidden, response.StatusCode)
	})

	t.Run("owner_deletes", func(t *testing.T) {
		response, body := send(t, server, http.MethodDelete, "/"+created.ID, owner.ID, "")
		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, "Task deleted successfully", body.Message)
		assert.Contains(t, string(body.Data), created.ID)
	})

	t.Run("second_delete_is_404", func(t *testing.T) {
		response, _ := send(t, server, http.MethodDelete, "/"+created.ID, owner.ID, "")
		assert.Equal(t, http.StatusNotFound, response.StatusCode)
	})
}

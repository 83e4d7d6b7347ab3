package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createRoutine(t *testing.T, app *TestApp, access *http.Cookie, name string, public bool) string {
	t.Helper()
	resp := app.doJSON(t, http.MethodPost, "/api/routines", map[string]any{
		"name":        name,
		"description": "chest and triceps",
		"public":      public,
		"equipment": []map[string]any{
			{"name": "bench press", "sets": 5, "reps": 5, "weight": 80},
			{"name": "dip bars", "sets": 3, "reps": 10, "weight": 10},
		},
	}, access)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	return body["id"].(string)
}

func createGym(t *testing.T, app *TestApp, access *http.Cookie, equipment []string) string {
	t.Helper()
	resp := app.doJSON(t, http.MethodPost, "/api/gyms", map[string]any{
		"name":      "garage",
		"equipment": equipment,
	}, access)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	return body["id"].(string)
}

// TestRoutineFlow: create -> list -> update -> use at a gym -> workout log
// appears -> delete.
func TestRoutineFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	access, _ := app.signupAndLogin(t, "lifter@example.com", "secret123")

	routineID := createRoutine(t, app, access, "push day", false)
	gymID := createGym(t, app, access, []string{"bench press", "dip bars", "squat rack"})

	// List own routines
	resp := app.doJSON(t, http.MethodGet, "/api/routines", nil, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodeBody(t, resp)
	assert.Equal(t, float64(1), page["totalItems"])
	routine := page["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "push day", routine["name"])
	assert.Len(t, routine["equipment"].([]any), 2)

	// Update replaces the items wholesale
	resp = app.doJSON(t, http.MethodPatch, "/api/routines/"+routineID, map[string]any{
		"name":        "push day v2",
		"description": "heavier",
		"equipment": []map[string]any{
			{"name": "bench press", "sets": 5, "reps": 3, "weight": 90},
		},
	}, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)
	assert.Equal(t, "push day v2", updated["name"])
	assert.Len(t, updated["equipment"].([]any), 1)

	// Use the routine at the gym
	resp = app.doJSON(t, http.MethodPost, "/api/routines/logs", map[string]any{
		"routineId": routineID,
		"gymId":     gymID,
	}, access)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The workout log appears, joined with the routine
	resp = app.doJSON(t, http.MethodGet, "/api/logs", nil, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logsPage := decodeBody(t, resp)
	require.Equal(t, float64(1), logsPage["totalItems"])
	logEntry := logsPage["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "push day v2", logEntry["routine_name"])
	assert.Len(t, logEntry["exercises"].([]any), 1)

	// Delete the log
	resp = app.doJSON(t, http.MethodDelete, "/api/logs/"+logEntry["id"].(string), nil, access)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete the routine
	resp = app.doJSON(t, http.MethodDelete, "/api/routines/"+routineID, nil, access)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUseRoutineMissingEquipment(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	access, _ := app.signupAndLogin(t, "lifter@example.com", "secret123")

	routineID := createRoutine(t, app, access, "push day", false)
	gymID := createGym(t, app, access, []string{"treadmill"})

	resp := app.doJSON(t, http.MethodPost, "/api/routines/logs", map[string]any{
		"routineId": routineID,
		"gymId":     gymID,
	}, access)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body["error"], "bench press")
	assert.Contains(t, body["error"], "dip bars")

	// No workout log was recorded
	resp = app.doJSON(t, http.MethodGet, "/api/logs", nil, access)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	logsPage := decodeBody(t, resp)
	assert.Equal(t, float64(0), logsPage["totalItems"])
}

func TestPublicRoutineVisibility(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	authorAccess, _ := app.signupAndLogin(t, "author@example.com", "secret123")
	viewerAccess, _ := app.signupAndLogin(t, "viewer@example.com", "secret123")

	createRoutine(t, app, authorAccess, "shared plan", true)
	createRoutine(t, app, authorAccess, "private plan", false)

	// "mine" shows nothing for the viewer
	resp := app.doJSON(t, http.MethodGet, "/api/routines?filter=mine", nil, viewerAccess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodeBody(t, resp)
	assert.Equal(t, float64(0), page["totalItems"])

	// "all" shows the public routine with its author attached
	resp = app.doJSON(t, http.MethodGet, "/api/routines?filter=all", nil, viewerAccess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = decodeBody(t, resp)
	require.Equal(t, float64(1), page["totalItems"])
	shared := page["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "shared plan", shared["name"])
	assert.NotEmpty(t, shared["author"])

	// A public routine can be used at the viewer's own gym
	gymID := createGym(t, app, viewerAccess, []string{"bench press", "dip bars"})
	resp = app.doJSON(t, http.MethodPost, "/api/routines/logs", map[string]any{
		"routineId": shared["id"],
		"gymId":     gymID,
	}, viewerAccess)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

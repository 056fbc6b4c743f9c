//go:build integration

package integration

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/bissquit/task-garden/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskListResult struct {
	Data []map[string]interface{} `json:"data"`
}

func taskNames(result taskListResult) []string {
	names := make([]string, 0, len(result.Data))
	for _, task := range result.Data {
		if name, ok := task["taskName"].(string); ok {
			names = append(names, name)
		}
	}
	return names
}

func TestTasks_List_RequiresSession(t *testing.T) {
	client := newTestClient(t)

	resp, err := client.GET("/api/v1/tasks")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestTasks_List_AdminSeesAll(t *testing.T) {
	client := newTestClient(t)
	client.LoginAs(t, "meganlewis@example.com")

	resp, err := client.GET("/api/v1/tasks")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result taskListResult
	testutil.DecodeJSON(t, resp, &result)
	names := taskNames(result)
	assert.Contains(t, names, "Task 21")
	assert.Contains(t, names, "Task 74")
}

func TestTasks_List_RegularUserSeesOnlyReported(t *testing.T) {
	client := newTestClient(t)
	client.LoginAs(t, "morrislucas@example.org")

	resp, err := client.GET("/api/v1/tasks")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result taskListResult
	testutil.DecodeJSON(t, resp, &result)
	names := taskNames(result)
	assert.Contains(t, names, "Task 56") // reported by Julie Johnson
	assert.NotContains(t, names, "Task 74")
	assert.NotContains(t, names, "Task 46") // assigned, not reported
}

func TestTasks_List_ViewerSeesOnlyAssigned(t *testing.T) {
	client := newTestClient(t)
	client.LoginAs(t, "nlynch@example.org")

	resp, err := client.GET("/api/v1/tasks")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result taskListResult
	testutil.DecodeJSON(t, resp, &result)
	names := taskNames(result)
	assert.Contains(t, names, "Test Task 1") // assigned to James Hanson
	assert.NotContains(t, names, "Task 16")
	assert.NotContains(t, names, "Task 74")
}

func TestTasks_List_FilterByStatusAndType(t *testing.T) {
	client := newTestClient(t)
	client.LoginAs(t, "meganlewis@example.com")

	resp, err := client.GET("/api/v1/tasks?status=Done&type=" + url.QueryEscape("택배요청"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result taskListResult
	testutil.DecodeJSON(t, resp, &result)
	names := taskNames(result)
	assert.Contains(t, names, "Task 74")
	assert.NotContains(t, names, "Task 16") // Done but a purchase task
	assert.NotContains(t, names, "Task 21") // delivery but Delayed
}

func TestTasks_List_SearchByName(t *testing.T) {
	client := newTestClient(t)
	client.LoginAs(t, "eobrien@example.org")

	resp, err := client.GET("/api/v1/tasks?q=" + url.QueryEscape("Test Task 1"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result taskListResult
	testutil.DecodeJSON(t, resp, &result)
	names := taskNames(result)
	assert.Contains(t, names, "Test Task 1")
	assert.NotContains(t, names, "Test Task 2")
}

func TestTasks_List_SortByDueDate(t *testing.T) {
	client := newTestClient(t)
	client.LoginAs(t, "meganlewis@example.com")

	resp, err := client.GET("/api/v1/tasks?sort=dueDate&dir=asc")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result taskListResult
	testutil.DecodeJSON(t, resp, &result)
	require.NotEmpty(t, result.Data)

	var prev string
	for _, task := range result.Data {
		due, _ := task["dueDate"].(string)
		if prev != "" {
			assert.LessOrEqual(t, prev, due)
		}
		prev = due
	}
}

func TestTasks_List_UnknownStatus(t *testing.T) {
	client := newTestClientWithoutValidation()
	client.LoginAs(t, "meganlewis@example.com")

	resp, err := client.GET("/api/v1/tasks?status=Bogus")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestTasks_Create_PurchaseRoundTrip(t *testing.T) {
	client := newTestClient(t)
	client.LoginAs(t, "emma78@example.net")

	resp, err := client.POST("/api/v1/tasks", map[string]interface{}{
		"taskType": "물품구매",
		"taskName": "Order standing lamps",
		"assignee": "Julie Johnson",
		"dueDate":  "2025-09-30",
		"itemName": "Standing lamp",
		"quantity": 4,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Data map[string]interface{} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &created)
	assert.Equal(t, "Order standing lamps", created.Data["taskName"])
	assert.Equal(t, "Emma Park", created.Data["reporter"])
	assert.Equal(t, "Created", created.Data["status"])
	// Description defaults to "[type] name" when omitted
	assert.Equal(t, "[물품구매] Order standing lamps", created.Data["taskDescription"])
	assert.Equal(t, "Standing lamp", created.Data["itemName"])
	assert.Nil(t, created.Data["completedAt"])

	// The new task is persisted and visible on the next list
	resp, err = client.GET("/api/v1/tasks")
	require.NoError(t, err)
	var result taskListResult
	testutil.DecodeJSON(t, resp, &result)
	assert.Contains(t, taskNames(result), "Order standing lamps")
}

func TestTasks_Create_MissingQuantity(t *testing.T) {
	client := newTestClientWithoutValidation()
	client.LoginAs(t, "meganlewis@example.com")

	resp, err := client.POST("/api/v1/tasks", map[string]interface{}{
		"taskType": "물품구매",
		"taskName": "Broken purchase",
		"assignee": "Julie Johnson",
		"dueDate":  "2025-09-30",
		"itemName": "Chairs",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResult struct {
		Error struct {
			Message string `json:"message"`
			Details []struct {
				Field string `json:"field"`
			} `json:"details"`
		} `json:"error"`
	}
	testutil.DecodeJSON(t, resp, &errResult)
	fields := make([]string, 0, len(errResult.Error.Details))
	for _, d := range errResult.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.Contains(t, fields, "quantity")
}

func TestTasks_Create_ViewerForbidden(t *testing.T) {
	client := newTestClientWithoutValidation()
	client.LoginAs(t, "nlynch@example.org")

	resp, err := client.POST("/api/v1/tasks", map[string]interface{}{
		"taskType": "물품구매",
		"taskName": "Not allowed",
		"assignee": "Julie Johnson",
		"dueDate":  "2025-09-30",
		"itemName": "Pens",
		"quantity": 10,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestTasks_Create_UnassignableAssignee(t *testing.T) {
	client := newTestClientWithoutValidation()
	// PrimeUser cannot assign to Admins
	client.LoginAs(t, "emma78@example.net")

	resp, err := client.POST("/api/v1/tasks", map[string]interface{}{
		"taskType": "물품구매",
		"taskName": "Assign to admin",
		"assignee": "Megan Lewis",
		"dueDate":  "2025-09-30",
		"itemName": "Notebooks",
		"quantity": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

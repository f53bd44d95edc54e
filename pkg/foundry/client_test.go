package foundry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/logging"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL,
		WithCredential(NewStaticTokenCredential("test-token")),
		WithLogger(logging.NewNoOpLogger()),
	)
	require.NoError(t, err)
	return client
}

func TestNewClient_RequiresEndpoint(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "endpoint")
}

func TestClient_RequestShape(t *testing.T) {
	var gotPath, gotVersion, gotAuth, gotContentType string

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.URL.Query().Get("api-version")
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(Agent{ID: "asst_1", Name: "helper"})
	}))

	agent, err := client.CreateAgent(context.Background(), CreateAgentRequest{
		Model: "gpt-4o",
		Name:  "helper",
	})
	require.NoError(t, err)

	assert.Equal(t, "asst_1", agent.ID)
	assert.Equal(t, "/assistants", gotPath)
	assert.Equal(t, defaultAPIVersion, gotVersion)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_APIVersionOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-12-01", r.URL.Query().Get("api-version"))
		_ = json.NewEncoder(w).Encode(Thread{ID: "thread_1"})
	}))
	defer server.Close()

	client, err := NewClient(server.URL,
		WithCredential(NewStaticTokenCredential("t")),
		WithAPIVersion("2024-12-01"),
		WithLogger(logging.NewNoOpLogger()),
	)
	require.NoError(t, err)

	_, err = client.CreateThread(context.Background(), CreateThreadRequest{})
	require.NoError(t, err)
}

func TestAPIKeyCredential_Header(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("api-key"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(Thread{ID: "thread_1"})
	}))
	defer server.Close()

	client, err := NewClient(server.URL,
		WithCredential(NewAPIKeyCredential("secret")),
		WithLogger(logging.NewNoOpLogger()),
	)
	require.NoError(t, err)

	thread, err := client.CreateThread(context.Background(), CreateThreadRequest{})
	require.NoError(t, err)
	assert.Equal(t, "thread_1", thread.ID)
}

func TestClient_DecodesErrorEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": {"code": "agent_not_found", "message": "No agent with that ID"}}`))
	}))

	_, err := client.GetAgent(context.Background(), "asst_missing")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "agent_not_found", apiErr.Code)
	assert.Equal(t, "No agent with that ID", apiErr.Message)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))

	_, err := client.GetThread(context.Background(), "thread_1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestEnsureAgent_ReusesExisting(t *testing.T) {
	var createCalls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_ = json.NewEncoder(w).Encode(page[Agent]{
				Data: []Agent{
					{ID: "asst_1", Name: "other-agent"},
					{ID: "asst_2", Name: "my-agent"},
				},
			})
		case r.Method == http.MethodPost:
			createCalls++
			_ = json.NewEncoder(w).Encode(Agent{ID: "asst_new", Name: "my-agent"})
		}
	}))

	agent, created, err := client.EnsureAgent(context.Background(), CreateAgentRequest{
		Model: "gpt-4o",
		Name:  "my-agent",
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "asst_2", agent.ID)
	assert.Zero(t, createCalls)
}

func TestEnsureAgent_CreatesAcrossPages(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_ = json.NewEncoder(w).Encode(Agent{ID: "asst_new", Name: "my-agent"})
			return
		}
		if r.URL.Query().Get("after") == "" {
			_ = json.NewEncoder(w).Encode(page[Agent]{
				Data:    []Agent{{ID: "asst_1", Name: "first"}},
				HasMore: true,
			})
			return
		}
		_ = json.NewEncoder(w).Encode(page[Agent]{
			Data: []Agent{{ID: "asst_2", Name: "second"}},
		})
	}))

	agent, created, err := client.EnsureAgent(context.Background(), CreateAgentRequest{
		Model: "gpt-4o",
		Name:  "my-agent",
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "asst_new", agent.ID)
}

func TestEnsureAgent_RequiresName(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, _, err := client.EnsureAgent(context.Background(), CreateAgentRequest{Model: "gpt-4o"})
	assert.Error(t, err)
}

func TestListMessages_QueryParameters(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "asc", r.URL.Query().Get("order"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(page[Message]{Data: []Message{{ID: "msg_1"}}})
	}))

	messages, err := client.ListMessages(context.Background(), "thread_1", ListMessagesOptions{
		Order: OrderAscending,
		Limit: 5,
	})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "msg_1", messages[0].ID)
}

func TestLatestAssistantMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		_ = json.NewEncoder(w).Encode(page[Message]{Data: []Message{
			{ID: "msg_3", Role: RoleUser},
			{ID: "msg_2", Role: RoleAssistant, Content: []MessageContent{
				{Type: "text", Text: &MessageText{Value: "the answer"}},
			}},
			{ID: "msg_1", Role: RoleUser},
		}})
	}))

	message, err := client.LatestAssistantMessage(context.Background(), "thread_1")
	require.NoError(t, err)
	assert.Equal(t, "msg_2", message.ID)
	assert.Equal(t, "the answer", message.Text())
}

func TestLatestAssistantMessage_NoneFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(page[Message]{Data: []Message{{ID: "msg_1", Role: RoleUser}}})
	}))

	_, err := client.LatestAssistantMessage(context.Background(), "thread_1")
	assert.Error(t, err)
}

func TestUploadFile_Multipart(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, FilePurposeAgents, r.FormValue("purpose"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.txt", header.Filename)

		_ = json.NewEncoder(w).Encode(File{ID: "file_1", Filename: "notes.txt", Purpose: FilePurposeAgents})
	}))

	file, err := client.UploadFile(context.Background(), "/tmp/some/dir/notes.txt", strings.NewReader("hello"), "")
	require.NoError(t, err)
	assert.Equal(t, "file_1", file.ID)
}

func TestWaitForVectorStore(t *testing.T) {
	var polls int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		polls++
		store := VectorStore{ID: "vs_1", Status: "in_progress", FileCounts: FileCounts{InProgress: 1, Total: 2}}
		if polls >= 3 {
			store.Status = "completed"
			store.FileCounts = FileCounts{Completed: 2, Total: 2}
		}
		_ = json.NewEncoder(w).Encode(store)
	}))

	store, err := client.WaitForVectorStore(context.Background(), "vs_1", time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, "completed", store.Status)
	assert.GreaterOrEqual(t, polls, 3)
}

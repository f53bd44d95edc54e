package foundry

import "encoding/json"

// Agent is a hosted agent definition
type Agent struct {
	ID           string            `json:"id"`
	Object       string            `json:"object"`
	CreatedAt    int64             `json:"created_at"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Model        string            `json:"model"`
	Instructions string            `json:"instructions"`
	Tools        []ToolDefinition  `json:"tools,omitempty"`
	ToolRes      *ToolResources    `json:"tool_resources,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// ToolDefinition describes one tool attached to an agent. Type selects the
// variant; only the matching fields are populated.
type ToolDefinition struct {
	Type     string              `json:"type"`
	Function *FunctionDefinition `json:"function,omitempty"`

	// MCP tool fields
	ServerLabel  string   `json:"server_label,omitempty"`
	ServerURL    string   `json:"server_url,omitempty"`
	AllowedTools []string `json:"allowed_tools,omitempty"`

	// SharePoint grounding fields
	SharePointGrounding *ConnectionGrounding `json:"sharepoint_grounding,omitempty"`
}

// FunctionDefinition is the JSON-schema description of a function tool
type FunctionDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

// ConnectionGrounding binds a tool to project connections
type ConnectionGrounding struct {
	Connections []ConnectionRef `json:"connections"`
}

// ConnectionRef references a project connection by ID
type ConnectionRef struct {
	ConnectionID string `json:"connection_id"`
}

// CodeInterpreterTool returns a code interpreter tool definition
func CodeInterpreterTool() ToolDefinition {
	return ToolDefinition{Type: "code_interpreter"}
}

// FileSearchTool returns a file search tool definition
func FileSearchTool() ToolDefinition {
	return ToolDefinition{Type: "file_search"}
}

// FunctionTool returns a function tool definition
func FunctionTool(def FunctionDefinition) ToolDefinition {
	return ToolDefinition{Type: "function", Function: &def}
}

// SharePointTool returns a SharePoint grounding tool bound to a connection
func SharePointTool(connectionID string) ToolDefinition {
	return ToolDefinition{
		Type: "sharepoint_grounding",
		SharePointGrounding: &ConnectionGrounding{
			Connections: []ConnectionRef{{ConnectionID: connectionID}},
		},
	}
}

// MCPTool returns an MCP tool definition pointing at a remote MCP server.
// The label may contain only letters, numbers and underscores.
func MCPTool(serverLabel, serverURL string, allowedTools ...string) ToolDefinition {
	return ToolDefinition{
		Type:         "mcp",
		ServerLabel:  serverLabel,
		ServerURL:    serverURL,
		AllowedTools: allowedTools,
	}
}

// ToolResources carries per-tool resource bindings on an agent or thread
type ToolResources struct {
	CodeInterpreter *CodeInterpreterResources `json:"code_interpreter,omitempty"`
	FileSearch      *FileSearchResources      `json:"file_search,omitempty"`
}

// CodeInterpreterResources lists files available to the code interpreter
type CodeInterpreterResources struct {
	FileIDs []string `json:"file_ids,omitempty"`
}

// FileSearchResources lists vector stores available to file search
type FileSearchResources struct {
	VectorStoreIDs []string `json:"vector_store_ids,omitempty"`
}

// Thread is a conversation thread
type Thread struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	CreatedAt int64             `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Message is a message on a thread
type Message struct {
	ID          string           `json:"id"`
	Object      string           `json:"object"`
	CreatedAt   int64            `json:"created_at"`
	ThreadID    string           `json:"thread_id"`
	Role        string           `json:"role"`
	Content     []MessageContent `json:"content"`
	AssistantID string           `json:"assistant_id,omitempty"`
	RunID       string           `json:"run_id,omitempty"`
	Attachments []Attachment     `json:"attachments,omitempty"`
}

// Text returns the first text block of the message, or ""
func (m *Message) Text() string {
	for _, part := range m.Content {
		if part.Type == "text" && part.Text != nil {
			return part.Text.Value
		}
	}
	return ""
}

// GeneratedFileIDs returns IDs of files the message references (image blocks
// and file-path annotations), in order of appearance.
func (m *Message) GeneratedFileIDs() []string {
	var ids []string
	for _, part := range m.Content {
		if part.ImageFile != nil {
			ids = append(ids, part.ImageFile.FileID)
		}
		if part.Text != nil {
			for _, ann := range part.Text.Annotations {
				if ann.FilePath != nil {
					ids = append(ids, ann.FilePath.FileID)
				}
			}
		}
	}
	return ids
}

// MessageContent is one content block of a message
type MessageContent struct {
	Type      string       `json:"type"`
	Text      *MessageText `json:"text,omitempty"`
	ImageFile *ImageFile   `json:"image_file,omitempty"`
}

// MessageText is the text variant of a content block
type MessageText struct {
	Value       string       `json:"value"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// ImageFile references a generated image
type ImageFile struct {
	FileID string `json:"file_id"`
}

// Annotation marks a citation or file reference inside message text
type Annotation struct {
	Type         string        `json:"type"`
	Text         string        `json:"text,omitempty"`
	StartIndex   int           `json:"start_index,omitempty"`
	EndIndex     int           `json:"end_index,omitempty"`
	FileCitation *FileCitation `json:"file_citation,omitempty"`
	FilePath     *FilePathRef  `json:"file_path,omitempty"`
}

// FileCitation points at the source file of a cited passage
type FileCitation struct {
	FileID string `json:"file_id"`
	Quote  string `json:"quote,omitempty"`
}

// FilePathRef points at a file the agent produced
type FilePathRef struct {
	FileID string `json:"file_id"`
}

// Attachment binds an uploaded file to a message for specific tools
type Attachment struct {
	FileID string           `json:"file_id"`
	Tools  []ToolDefinition `json:"tools,omitempty"`
}

// RunStatus is the lifecycle state of a run
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusExpired        RunStatus = "expired"
)

// Terminal reports whether the status is final
func (s RunStatus) Terminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusFailed, RunStatusCancelled, RunStatusExpired:
		return true
	}
	return false
}

// Run is one execution of an agent on a thread
type Run struct {
	ID             string          `json:"id"`
	Object         string          `json:"object"`
	CreatedAt      int64           `json:"created_at"`
	ThreadID       string          `json:"thread_id"`
	AssistantID    string          `json:"assistant_id"`
	Status         RunStatus       `json:"status"`
	Model          string          `json:"model,omitempty"`
	StartedAt      int64           `json:"started_at,omitempty"`
	CompletedAt    int64           `json:"completed_at,omitempty"`
	LastError      *RunError       `json:"last_error,omitempty"`
	RequiredAction *RequiredAction `json:"required_action,omitempty"`
	Usage          *RunUsage       `json:"usage,omitempty"`
}

// RunError describes why a run failed
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RunUsage is the token accounting for a run
type RunUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// RequiredAction tells the caller what a paused run is waiting for
type RequiredAction struct {
	Type              string                   `json:"type"`
	SubmitToolOutputs *SubmitToolOutputsAction `json:"submit_tool_outputs,omitempty"`
}

// SubmitToolOutputsAction lists the pending tool calls
type SubmitToolOutputsAction struct {
	ToolCalls []ToolCall `json:"tool_calls"`
}

// ToolCall is one pending function invocation
type ToolCall struct {
	ID       string        `json:"id"`
	Type     string        `json:"type"`
	Function *FunctionCall `json:"function,omitempty"`
}

// FunctionCall carries the name and JSON-encoded arguments of a tool call
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolOutput is the result submitted for one tool call
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

// RunStep is one step of a run (message creation or tool calls)
type RunStep struct {
	ID          string          `json:"id"`
	Object      string          `json:"object"`
	Type        string          `json:"type"`
	Status      string          `json:"status"`
	CreatedAt   int64           `json:"created_at"`
	CompletedAt int64           `json:"completed_at,omitempty"`
	StepDetails json.RawMessage `json:"step_details,omitempty"`
}

// File is an uploaded or generated file
type File struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
}

// File purposes accepted by Upload
const (
	FilePurposeAgents      = "assistants"
	FilePurposeAgentOutput = "assistants_output"
)

// VectorStore holds indexed files for file search
type VectorStore struct {
	ID         string     `json:"id"`
	Object     string     `json:"object"`
	CreatedAt  int64      `json:"created_at"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	FileCounts FileCounts `json:"file_counts"`
}

// FileCounts summarizes indexing progress inside a vector store
type FileCounts struct {
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Cancelled  int `json:"cancelled"`
	Total      int `json:"total"`
}

// VectorStoreFile is one file inside a vector store
type VectorStoreFile struct {
	ID            string    `json:"id"`
	Object        string    `json:"object"`
	VectorStoreID string    `json:"vector_store_id"`
	Status        string    `json:"status"`
	LastError     *RunError `json:"last_error,omitempty"`
}

// Connection is a project connection (e.g. a SharePoint site)
type Connection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// DeletionStatus is the service acknowledgement for delete calls
type DeletionStatus struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

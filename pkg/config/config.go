package config

import (
	"sync"

	"github.com/spf13/viper"
)

// Config holds the settings shared by the exercises and commands.
// Values come from environment variables (a .env file can be loaded by the
// caller with godotenv before the first Get).
type Config struct {
	// ProjectEndpoint is the Azure AI Foundry project endpoint, e.g.
	// https://<resource>.services.ai.azure.com/api/projects/<project>
	ProjectEndpoint string

	// ModelDeployment is the model deployment name used when creating agents
	ModelDeployment string

	// APIVersion selects the agents data-plane API version
	APIVersion string

	// APIKey authenticates requests when set; otherwise Azure AD is used
	APIKey string

	ProjectName    string
	SubscriptionID string

	// SharePointConnection is the project connection name for the SharePoint tool
	SharePointConnection string

	// MCPServerURL is the URL agents use to reach the SQL MCP server
	MCPServerURL string

	// MCPServerPort is the local listen port for cmd/mcp-sqlite-server
	MCPServerPort int

	// MCPDatabasePath is the SQLite file backing the SQL MCP tools
	MCPDatabasePath string

	LogLevel string
}

var (
	once sync.Once
	cfg  *Config
)

// Get returns the process-wide configuration, loading it on first use
func Get() *Config {
	once.Do(func() {
		cfg = Load()
	})
	return cfg
}

// Load reads configuration from the environment
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("API_VERSION", "2025-05-15-preview")
	v.SetDefault("MCP_SERVER_URL", "http://localhost:3000")
	v.SetDefault("MCP_SERVER_PORT", 3000)
	v.SetDefault("MCP_DATABASE_PATH", "./mcp-config/business.db")
	v.SetDefault("LOG_LEVEL", "info")

	return &Config{
		ProjectEndpoint:      v.GetString("PROJECT_ENDPOINT"),
		ModelDeployment:      v.GetString("MODEL_DEPLOYMENT_NAME"),
		APIVersion:           v.GetString("API_VERSION"),
		APIKey:               v.GetString("AZURE_AI_API_KEY"),
		ProjectName:          v.GetString("PROJECT_NAME"),
		SubscriptionID:       v.GetString("AZURE_SUBSCRIPTION_ID"),
		SharePointConnection: v.GetString("SHAREPOINT_CONNECTION_NAME"),
		MCPServerURL:         v.GetString("MCP_SERVER_URL"),
		MCPServerPort:        v.GetInt("MCP_SERVER_PORT"),
		MCPDatabasePath:      v.GetString("MCP_DATABASE_PATH"),
		LogLevel:             v.GetString("LOG_LEVEL"),
	}
}

// Validate returns the names of required settings that are missing.
// Only the settings every exercise needs are required; tool-specific ones
// (e.g. the SharePoint connection) are checked by the exercises that use them.
func (c *Config) Validate() []string {
	var missing []string
	if c.ProjectEndpoint == "" {
		missing = append(missing, "PROJECT_ENDPOINT")
	}
	if c.ModelDeployment == "" {
		missing = append(missing, "MODEL_DEPLOYMENT_NAME")
	}
	return missing
}

package foundry

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// tokenScope is the OAuth scope for the Azure AI Foundry data plane
const tokenScope = "https://ai.azure.com/.default"

// TokenProvider authorizes outgoing requests to the agent service
type TokenProvider interface {
	// Authorize attaches credentials to the request
	Authorize(ctx context.Context, req *http.Request) error
}

// APIKeyCredential authenticates with a project API key
type APIKeyCredential struct {
	key string
}

// NewAPIKeyCredential creates a credential from a project API key
func NewAPIKeyCredential(key string) *APIKeyCredential {
	return &APIKeyCredential{key: key}
}

// Authorize attaches the api-key header to the request
func (c *APIKeyCredential) Authorize(_ context.Context, req *http.Request) error {
	if c.key == "" {
		return fmt.Errorf("api key is empty")
	}
	req.Header.Set("api-key", c.key)
	return nil
}

// AzureCredential authenticates with Azure AD via the default credential
// chain (environment, managed identity, az login). Tokens are cached and
// refreshed shortly before expiry.
type AzureCredential struct {
	cred azcore.TokenCredential

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewAzureCredential creates a credential backed by DefaultAzureCredential
func NewAzureCredential() (*AzureCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create default azure credential: %w", err)
	}
	return &AzureCredential{cred: cred}, nil
}

// NewAzureCredentialFrom wraps an existing token credential
func NewAzureCredentialFrom(cred azcore.TokenCredential) *AzureCredential {
	return &AzureCredential{cred: cred}
}

// Authorize attaches a bearer token to the request
func (c *AzureCredential) Authorize(ctx context.Context, req *http.Request) error {
	token, err := c.getToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (c *AzureCredential) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Until(c.expires) > 2*time.Minute {
		return c.token, nil
	}

	tok, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{tokenScope}})
	if err != nil {
		return "", fmt.Errorf("failed to acquire token: %w", err)
	}
	c.token = tok.Token
	c.expires = tok.ExpiresOn
	return c.token, nil
}

// StaticTokenCredential authorizes with a fixed bearer token. Used in tests.
type StaticTokenCredential struct {
	token string
}

// NewStaticTokenCredential creates a credential from a fixed token
func NewStaticTokenCredential(token string) *StaticTokenCredential {
	return &StaticTokenCredential{token: token}
}

// Authorize attaches the bearer token to the request
func (c *StaticTokenCredential) Authorize(_ context.Context, req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+c.token)
	return nil
}

package openai

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			cfg:     Config{APIKey: "test-key"},
			wantErr: false,
		},
		{
			name:    "valid config with model",
			cfg:     Config{APIKey: "test-key", Model: "gpt-4"},
			wantErr: false,
		},
		{
			name:    "missing API key",
			cfg:     Config{},
			wantErr: true,
			errMsg:  "OpenAI API key is required",
		},
		{
			name:    "missing API key names the provider",
			cfg:     Config{Name: "Groq"},
			wantErr: true,
			errMsg:  "Groq API key is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestClient_Model(t *testing.T) {
	c, err := NewClient(Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, c.Model(false))
	assert.Equal(t, DefaultModel, c.Model(true), "deep model falls back to model")

	c, err = NewClient(Config{APIKey: "k", Model: "sonar", DeepModel: "sonar-pro"})
	require.NoError(t, err)
	assert.Equal(t, "sonar-pro", c.Model(true))
}

// chatServer answers every chat completion with content and records the
// decoded request bodies.
func chatServer(t *testing.T, status int, content string, requests *[]map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var decoded map[string]any
		assert.NoError(t, json.Unmarshal(body, &decoded))
		if requests != nil {
			*requests = append(*requests, decoded)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error": {"message": "invalid api key", "type": "invalid_request_error"}}`))
			return
		}
		resp := map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Resolve(t *testing.T) {
	var requests []map[string]any
	srv := chatServer(t, http.StatusOK,
		"```json\n{\"resolved_name\": \"Acetylsalicylic acid\", \"entity_type\": \"Chemical\", \"identifiers\": {\"PubChem CID\": 2244}}\n```",
		&requests)

	c, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL, JSONMode: true, DeepModel: "gpt-4o"})
	require.NoError(t, err)

	res, err := c.Resolve(t.Context(), ports.ResolveRequest{
		EntityName: "aspirin",
		Options:    entities.DefaultSearchOptions(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Acetylsalicylic acid", res.ResolvedName)
	assert.Equal(t, "2244", res.Identifiers[entities.IdentifierPubChemCID])

	require.Len(t, requests, 1)
	assert.Equal(t, DefaultModel, requests[0]["model"])
	assert.Contains(t, requests[0], "response_format")

	_, err = c.Resolve(t.Context(), ports.ResolveRequest{EntityName: "asprin", DeepSearch: true})
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "gpt-4o", requests[1]["model"])
}

func TestClient_Resolve_NoJSONMode(t *testing.T) {
	var requests []map[string]any
	srv := chatServer(t, http.StatusOK, `{"resolved_name": "x"}`, &requests)

	c, err := NewClient(Config{Name: "Perplexity", APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Resolve(t.Context(), ports.ResolveRequest{EntityName: "x"})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.NotContains(t, requests[0], "response_format")
}

func TestClient_Resolve_Errors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := chatServer(t, http.StatusUnauthorized, "", nil)
		c, err := NewClient(Config{Name: "Groq", APIKey: "test-key", BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.Resolve(t.Context(), ports.ResolveRequest{EntityName: "aspirin"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "calling Groq")
		assert.Contains(t, err.Error(), "invalid api key")
	})

	t.Run("unparseable answer", func(t *testing.T) {
		srv := chatServer(t, http.StatusOK, "Sorry, I don't know.", nil)
		c, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.Resolve(t.Context(), ports.ResolveRequest{EntityName: "aspirin"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON")
	})

	t.Run("empty entity name", func(t *testing.T) {
		var requests []map[string]any
		srv := chatServer(t, http.StatusOK, "{}", &requests)
		c, err := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.Resolve(t.Context(), ports.ResolveRequest{EntityName: " "})
		assert.ErrorIs(t, err, entities.ErrEmptyEntityName)
		assert.Empty(t, requests, "no request is sent")
	})
}

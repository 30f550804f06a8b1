package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocumentListsRoutes(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "/v1", doc.BasePath)
	assert.GreaterOrEqual(t, len(doc.Paths), 40)
	for path, method := range map[string]string{
		"/jobs/public/{id}":       "get",
		"/cvs/{id}/download":      "get",
		"/plans/checkout":         "post",
		"/payments/webhook":       "post",
		"/notifications/{id}":     "delete",
		"/notifications/read-all": "patch",
	} {
		assert.Contains(t, doc.Paths[path], method, path)
	}
	assert.Contains(t, doc.Definitions, "response.Response")
	assert.Contains(t, doc.Definitions, "domain.JobRequest")
}

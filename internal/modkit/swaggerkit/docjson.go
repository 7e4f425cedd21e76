package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"cattery/internal/platform/config"
	perr "cattery/internal/platform/errors"

	docs "cattery/internal/services/api/docs"
)

// BasePath is where the versioned API is mounted
const BasePath = "/api/v1"

// docReader is swapped in tests
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// sharedErrors are documented on every operation that does not document them itself
var sharedErrors = []struct {
	status int
	code   perr.ErrorCode
	msg    string
}{
	{http.StatusInternalServerError, perr.ErrorCodePanic, "panic recovered"},
	{http.StatusServiceUnavailable, perr.ErrorCodeUnavailable, "cattery store unavailable"},
}

// serveDocJSON serves the generated document patched for the bundled UI
// the generator emits 3.1, which the UI cannot render, and knows nothing of the shared envelope
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		var doc map[string]any
		if err := json.Unmarshal([]byte(docReader()), &doc); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		patchDoc(doc, config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""))

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// obj returns m[key] as an object, creating it when absent
func obj(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	v := map[string]any{}
	m[key] = v
	return v
}

func patchDoc(doc map[string]any, titleSuffix string) {
	delete(doc, "swagger")
	if v, _ := doc["openapi"].(string); !strings.HasPrefix(v, "3.0") {
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": BasePath}}
	}
	if title, ok := obj(doc, "info")["title"].(string); ok && titleSuffix != "" {
		obj(doc, "info")["title"] = title + " " + titleSuffix
	}

	schemas := obj(obj(doc, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		str := map[string]any{"type": "string"}
		schemas["ErrorResponse"] = map[string]any{
			"type":     "object",
			"required": []any{"status_code", "status"},
			"properties": map[string]any{
				"status_code": map[string]any{"type": "integer"},
				"status":      str,
				"code":        map[string]any{"type": "string", "example": perr.ErrorCodeTooManyRequests.String()},
				"error":       str,
				"field":       str,
				"request_id":  str,
			},
		}
	}

	for _, item := range obj(doc, "paths") {
		ops, _ := item.(map[string]any)
		for _, op := range ops {
			op, ok := op.(map[string]any)
			if !ok {
				continue
			}
			responses := obj(op, "responses")
			for _, e := range sharedErrors {
				text := http.StatusText(e.status)
				status := strconv.Itoa(e.status)
				if _, ok := responses[status]; ok {
					continue
				}
				responses[status] = map[string]any{
					"description": text,
					"content": map[string]any{"application/json": map[string]any{
						"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
						"example": map[string]any{
							"status_code": e.status,
							"status":      text,
							"code":        e.code.String(),
							"error":       e.msg,
						},
					}},
				}
			}
		}
	}
}

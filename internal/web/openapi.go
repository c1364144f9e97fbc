package web

import (
	"context"
	"os"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoadOpenapi reads and validates the OpenAPI document served at /openapi.json.
func LoadOpenapi(location string) (*openapi3.T, []byte, error) {
	content, err := os.ReadFile(location)
	if err != nil {
		return nil, nil, err
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(content)
	if err != nil {
		return nil, nil, err
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, nil, err
	}

	return doc, content, nil
}

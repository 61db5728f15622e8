package knowledge

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ntutangyun/ai-ran-sim/errors"
)

// routesResponseSchema describes the get_routes response contract. The
// registry is external, so responses are validated before they replace
// local state.
const routesResponseSchema = `{
  "type": "object",
  "required": ["explainer_routes"],
  "properties": {
    "explainer_routes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["pattern"],
        "properties": {
          "pattern": {"type": "string"},
          "related": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["pattern", "relationship"],
              "properties": {
                "pattern": {"type": "string"},
                "relationship": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

var compileRoutesSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(routesResponseSchema))
})

// validateRoutesPayload checks a get_routes response against the contract
func validateRoutesPayload(payload []byte) error {
	schema, err := compileRoutesSchema()
	if err != nil {
		return errors.WrapFatal(err, "Explorer", "validateRoutesPayload",
			"compile response schema")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return errors.WrapInvalid(err, "Explorer", "validateRoutesPayload",
			"parse response")
	}

	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return errors.WrapInvalid(
			fmt.Errorf("%w: %s", errors.ErrInvalidData, strings.Join(details, "; ")),
			"Explorer", "validateRoutesPayload", "validate response")
	}

	return nil
}

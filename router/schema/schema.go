package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var ErrSchemaValidation = errors.New("schema validation failed")

// ValidationError is returned when a document does not match its schema.
type ValidationError struct {
	Result *gojsonschema.Result
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Result.Errors()))
	for _, re := range e.Result.Errors() {
		msgs = append(msgs, re.String())
	}

	return fmt.Sprintf("%s: %s", ErrSchemaValidation, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrSchemaValidation
}

//go:embed response.json
var responseDefinition json.RawMessage
var responseDefinitionLoader = gojsonschema.NewBytesLoader(responseDefinition)

var responseDefinitionSchema = mustSchema(responseDefinitionLoader)

func mustSchema(loader gojsonschema.JSONLoader) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(loader)
	if err != nil {
		panic(fmt.Sprintf("schema: invalid embedded schema: %v", err))
	}

	return s
}

// ValidateResponseDefinition validates raw JSON against the static
// response definition schema.
func ValidateResponseDefinition(data []byte) error {
	res, err := responseDefinitionSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	if !res.Valid() {
		return &ValidationError{Result: res}
	}

	return nil
}

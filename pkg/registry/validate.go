// pkg/registry/validate.go
package registry

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"mergington-activities/internal/common/errors"
)

//go:embed catalog.schema.json
var catalogSchema []byte

// ValidateCatalog checks a raw catalog document against the catalog JSON
// schema. It returns a CATALOG_INVALID error listing every violation.
func ValidateCatalog(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(catalogSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.NewCatalogInvalidError(err.Error())
	}
	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return errors.NewCatalogInvalidError(strings.Join(details, "; "))
}

package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is shared across all request types; validator instances cache
// parsed struct metadata, so a single instance is reused deliberately.
var validate = validator.New()

// DecodeJSON decodes the request body into v. Unknown fields are
// tolerated, matching the lenient write surface the clients expect.
func DecodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest checks v against its `validate` struct tags. Request
// payloads declare all their field-level rules through tags; cross-field
// and cross-entity rules (subscription end dates, active-service checks)
// belong to the domain and service layers, not here.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}

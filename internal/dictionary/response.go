package dictionary

import (
	"encoding/json"

	"github.com/starford/glosa/internal/models"
)

// codeNotFound is the structured error code the authority uses for unknown words.
const codeNotFound = "NOT_FOUND"

// apiResponse is the envelope every authority endpoint answers with.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Data        *models.Entry   `json:"data"`
	Error       json.RawMessage `json:"error,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

// errorCode extracts the error code, which the authority sends either as a
// bare string or as an object with a "code" field.
func (r *apiResponse) errorCode() string {
	if len(r.Error) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Error, &s); err == nil {
		return s
	}
	var obj struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(r.Error, &obj); err == nil {
		return obj.Code
	}
	return ""
}

// hasEntry reports whether a success response carries the expected data shape.
func (r *apiResponse) hasEntry() bool {
	return r.Data != nil && r.Data.Word != ""
}

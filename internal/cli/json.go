package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/cfx/internal/errors"
)

// machineMode is set by --json. Commands then print one JSON envelope and
// skip spinners, colors and prompts.
var machineMode bool

// MachineMode reports whether --json is in effect.
func MachineMode() bool { return machineMode }

// JSONEnvelope is the single object every --json invocation prints.
type JSONEnvelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *JSONError `json:"error,omitempty"`
}

// JSONError describes a failed command for scripts.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Details    any    `json:"details,omitempty"`
}

// Machine-readable error codes.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeServerNotFound = "SERVER_NOT_FOUND"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeTimeout        = "TIMEOUT"
	ErrCodeNoResults      = "NO_RESULTS"
	ErrCodeNetwork        = "NETWORK_ERROR"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeStorage        = "STORAGE_ERROR"
	ErrCodeUnknown        = "UNKNOWN"
)

// machineCodes maps internal error codes onto the published ones. ErrConfig
// is absent because it splits on the message.
var machineCodes = map[string]string{
	errors.ErrNotFound:       ErrCodeServerNotFound,
	errors.ErrRateLimited:    ErrCodeRateLimited,
	errors.ErrTimeout:        ErrCodeTimeout,
	errors.ErrNoResults:      ErrCodeNoResults,
	errors.ErrNetwork:        ErrCodeNetwork,
	errors.ErrEmptyInput:     ErrCodeInvalidInput,
	errors.ErrMalformedInput: ErrCodeInvalidInput,
	errors.ErrUnreadable:     ErrCodeStorage,
	errors.ErrUnwritable:     ErrCodeStorage,
}

// WriteJSONSuccess prints a successful envelope carrying data.
func WriteJSONSuccess(w io.Writer, data any) error {
	return encodeEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONError prints a failed envelope built from its parts.
func WriteJSONError(w io.Writer, code, message, suggestion string, details any) error {
	return encodeEnvelope(w, JSONEnvelope{Error: &JSONError{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Details:    details,
	}})
}

// WriteJSONFromError prints a failed envelope describing err.
func WriteJSONFromError(w io.Writer, err error) error {
	return encodeEnvelope(w, JSONEnvelope{Error: ErrorToJSON(err)})
}

func encodeEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON describes err for scripts. Structured errors keep their
// suggestion and internal code; anything else becomes UNKNOWN.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		return &JSONError{Code: ErrCodeUnknown, Message: err.Error()}
	}
	return &JSONError{
		Code:       mapErrorCode(e.Code, e.Message),
		Message:    e.Message,
		Suggestion: e.Suggestion,
		Details:    map[string]string{"code": e.Code},
	}
}

func mapErrorCode(internal, message string) string {
	if internal == errors.ErrConfig {
		msg := strings.ToLower(message)
		if strings.Contains(msg, "not found") || strings.Contains(msg, "couldn't find") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	}
	if code, ok := machineCodes[internal]; ok {
		return code
	}
	return ErrCodeUnknown
}

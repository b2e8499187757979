package syntax

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// diag receives structured diagnostics for failures recovered inside the
// entry points. It discards everything until a host installs a logger via
// EnableDiagnostics.
var diag logrus.FieldLogger = newDiscardLogger()

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// EnableDiagnostics installs the logger that receives recovered engine
// failures as structured entries instead of opaque crashes. Hosts call it
// at most once, before the first parse; it is not synchronized with
// in-flight calls. A nil logger leaves the current sink in place.
func EnableDiagnostics(l logrus.FieldLogger) {
	if l != nil {
		diag = l
	}
}

// GenerateAST parses code in the named language and returns the serialized
// ParseResult. The returned string is always well-formed JSON: unsupported
// languages, engine failures, and serialization failures all degrade to
// failure envelopes, and a panic anywhere below is recovered rather than
// propagated to the caller.
func GenerateAST(code, language string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			diag.WithFields(logrus.Fields{
				"language": language,
				"panic":    r,
			}).Error("recovered engine failure")
			out = marshalResult(ParseResult{
				Success:  false,
				Error:    fmt.Sprintf("Internal parser failure: %v", r),
				Language: language,
			})
		}
	}()
	return marshalResult(parseCode(code, language))
}

// GetSupportedLanguages returns the supported language identifiers as a
// serialized JSON array, in registry definition order. It is independent of
// any parse call.
func GetSupportedLanguages() string {
	data, _ := json.Marshal(languages)
	return string(data)
}

// marshalResult serializes an envelope, substituting a minimal failure
// envelope when encoding fails so that callers always receive well-formed
// JSON.
func marshalResult(result ParseResult) string {
	data, err := json.Marshal(result)
	if err == nil {
		return string(data)
	}

	diag.WithFields(logrus.Fields{
		"language": result.Language,
		"error":    err,
	}).Error("envelope serialization failed")

	fallback := ParseResult{
		Success:  false,
		Error:    fmt.Sprintf("Serialization error: %s", err),
		Language: result.Language,
	}
	if data, err = json.Marshal(fallback); err == nil {
		return string(data)
	}

	// A strings-only envelope cannot fail to encode; the constant keeps the
	// always-valid-JSON contract regardless.
	return `{"success":false,"error":"Serialization error","language":""}`
}

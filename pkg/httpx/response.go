package httpx

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
)

const contentTypeJSON = "application/json; charset=utf-8"

// JSON writes v as JSON with the given status code and sets Content-Type and
// nosniff. Encoding errors after the header is written are dropped.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError writes a standard {"error": message} JSON response.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// NoContent writes a bare 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Attachment writes v as indented JSON the browser saves as filename.
// The value is encoded before any header goes out, so an encoding failure
// still produces a 500.
func Attachment(w http.ResponseWriter, filename string, v any) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		JSONError(w, http.StatusInternalServerError, fmt.Sprintf("encode %s: %v", filename, err))
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(body, '\n'))
}

// SafeError returns the error message for client responses. With
// isProduction set, 5xx messages become the bare status text.
func SafeError(err error, status int, isProduction bool) string {
	if isProduction && status >= http.StatusInternalServerError {
		return http.StatusText(status)
	}
	return err.Error()
}

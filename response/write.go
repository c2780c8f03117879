package response

import (
	"net/http"

	"github.com/goccy/go-json"
)

// WriteJSON encodes body with the given status
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError writes {"error": message} with the given status
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Error{Error: message})
}

// Marshal indents body for tool and CLI output
func Marshal(body any) (string, error) {
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

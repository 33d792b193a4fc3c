// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DecodeJSONBody はリクエストボディをJSONとしてデコードします。
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	// タイポしたフィールドを黙って無視しない
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

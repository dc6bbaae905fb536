package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error 携带后端返回的 HTTP 状态与消息
// Error carries the HTTP status and message returned by the backend
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("server returned status %d", e.Status)
	}
	return e.Message
}

// IsNotFound 判断错误是否为 404，调用方以此做控制流分支而非真错误
// IsNotFound reports whether err is a 404; callers branch on it as control flow, not as a failure
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized 判断错误是否为 401
// IsUnauthorized reports whether err is a 401
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// decodeError 从响应体提取 FastAPI 风格的 {"detail": "..."} 消息
// decodeError extracts a FastAPI-style {"detail": "..."} message from the response body
func decodeError(status int, body []byte) *Error {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			return &Error{Status: status, Message: detail}
		}
	}
	return &Error{Status: status}
}

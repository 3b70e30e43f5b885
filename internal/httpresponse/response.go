package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	contentTypeJSON = "application/json"
	contentTypeSGF  = "application/x-go-sgf; charset=utf-8"
)

// Response is the envelope every JSON reply uses.
type Response[T any] struct {
	Status int `json:"Status"`
	Body   T   `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const INTERNALERRORJSON = "{\"Status\": 500,\"Body\":{\"ErrorDescription\": \"Internal server error\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

// WriteResponseWithStatus writes body in the {Status, Body} envelope with
// status as both the HTTP code and the envelope status.
func WriteResponseWithStatus[T any](w http.ResponseWriter, status int, body T) {
	jsonByte, err := json.Marshal(Response[T]{Status: status, Body: body})
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

// WriteError writes err in the error envelope.
func WriteError(w http.ResponseWriter, status int, err error) {
	WriteResponseWithStatus(w, status, ErrorResponse{ErrorDescription: err.Error()})
}

// WriteSGF writes a game record as a downloadable .sgf file.
func WriteSGF(w http.ResponseWriter, filename, text string) {
	w.Header().Set("Content-Type", contentTypeSGF)
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".sgf"))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}

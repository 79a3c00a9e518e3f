package httpx

import (
	"encoding/json"
	"net/http"
)

// User-facing messages shared by middlewares and handlers.
const (
	MsgMissingToken     = "Token não fornecido"
	MsgInvalidToken     = "Token expirado ou inválido"
	MsgInternal         = "Erro interno do servidor"
	MsgValidationFailed = "Erro de validação dos campos"
	MsgBadRequestBody   = "Requisição inválida"
	MsgTooManyRequests  = "Muitas requisições. Tente novamente mais tarde."
)

// Response is the envelope every endpoint writes. Data and Error are
// mutually exclusive in practice but the type does not enforce it.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WriteSuccess writes a success envelope with an optional data payload.
func WriteSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// WriteError writes a failure envelope with a user-facing message.
func WriteError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: false, Error: msg})
}

// WriteErrorData writes a failure envelope carrying structured detail,
// such as the list of validation messages.
func WriteErrorData(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, Response{Success: false, Error: msg, Data: data})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// NoCache marks a response as non-cacheable. Used on token-bearing endpoints.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

package http

import (
	"errors"
	"net/http"

	"github.com/agendaapi/agenda/internal/agenda/service"
	"github.com/agendaapi/agenda/internal/agenda/store"
	"github.com/agendaapi/agenda/pkg/httpx"
	"github.com/agendaapi/agenda/pkg/slogx"
)

const (
	msgUserCreated     = "Usuário criado com sucesso."
	msgUsernameTaken   = "Nome de usuário já cadastrado."
	msgBadCredentials  = "Credenciais inválidas"
	msgLoggedOut       = "Logout realizado com sucesso."
	msgWrongPassword   = "Senha atual incorreta"
	msgUserNotFound    = "Usuário não encontrado"
	msgPasswordChanged = "Senha alterada com sucesso"
)

// UsersHandler serves account registration, login, logout and password
// changes.
type UsersHandler struct {
	UserService *service.UserService
}

func registerRules() []httpx.Rule {
	return []httpx.Rule{
		{Field: "username", Required: true, Type: "string", MinLength: 3, MaxLength: 30},
		{Field: "password", Required: true, Type: "string", MinLength: 6, MaxLength: 128},
	}
}

func loginRules() []httpx.Rule {
	return registerRules()
}

func passwordRules() []httpx.Rule {
	return []httpx.Rule{
		{Field: "oldPassword", Required: true, Type: "string", MinLength: 6, MaxLength: 128},
		{Field: "newPassword", Required: true, Type: "string", MinLength: 6, MaxLength: 128},
	}
}

func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	payload := httpx.PayloadFromContext(r.Context())
	username, _ := payload["username"].(string)
	password, _ := payload["password"].(string)

	_, err := h.UserService.Register(r.Context(), username, password)
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusBadRequest, msgUsernameTaken)
	case err != nil:
		slogx.FromContext(r.Context()).Error("register failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
	default:
		httpx.WriteSuccess(w, http.StatusCreated, map[string]string{"message": msgUserCreated})
	}
}

func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	payload := httpx.PayloadFromContext(r.Context())
	username, _ := payload["username"].(string)
	password, _ := payload["password"].(string)

	token, err := h.UserService.Login(r.Context(), username, password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, msgBadCredentials)
	case err != nil:
		slogx.FromContext(r.Context()).Error("login failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
	default:
		httpx.NoCache(w)
		httpx.WriteSuccess(w, http.StatusOK, map[string]string{"token": token})
	}
}

func (h *UsersHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := httpx.TokenFromContext(r.Context())
	claims, _ := httpx.ClaimsFromContext(r.Context())

	if err := h.UserService.Logout(r.Context(), token, claims); err != nil {
		slogx.FromContext(r.Context()).Error("logout failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
		return
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]string{"message": msgLoggedOut})
}

func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())
	token, _ := httpx.TokenFromContext(r.Context())
	claims, _ := httpx.ClaimsFromContext(r.Context())

	payload := httpx.PayloadFromContext(r.Context())
	oldPassword, _ := payload["oldPassword"].(string)
	newPassword, _ := payload["newPassword"].(string)

	err := h.UserService.ChangePassword(r.Context(), userID, oldPassword, newPassword, token, claims)
	switch {
	case errors.Is(err, service.ErrWrongPassword):
		httpx.WriteError(w, http.StatusUnauthorized, msgWrongPassword)
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgUserNotFound)
	case err != nil:
		slogx.FromContext(r.Context()).Error("password change failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
	default:
		httpx.WriteSuccess(w, http.StatusOK, map[string]string{"message": msgPasswordChanged})
	}
}

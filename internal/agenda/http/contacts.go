package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agendaapi/agenda/internal/agenda/domain"
	"github.com/agendaapi/agenda/internal/agenda/service"
	"github.com/agendaapi/agenda/internal/agenda/store"
	"github.com/agendaapi/agenda/pkg/httpx"
	"github.com/agendaapi/agenda/pkg/slogx"
)

const (
	msgContactCreated  = "Contato criado com sucesso."
	msgContactNotFound = "Contato não encontrado"
	msgContactRemoved  = "Contato removido com sucesso."
)

// ContactsHandler serves the address book endpoints. The owner always
// comes from the verified token, never from the request.
type ContactsHandler struct {
	ContactService *service.ContactService
}

func contactRules() []httpx.Rule {
	return []httpx.Rule{
		{Field: "name", Required: true, Type: "string", MinLength: 3, MaxLength: 50},
		{Field: "phone", Required: true, Type: "string", MinLength: 6, MaxLength: 20},
	}
}

type contactJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

func toContactJSON(c domain.Contact) contactJSON {
	return contactJSON{ID: c.ID, Name: c.Name, Phone: c.Phone, CreatedAt: c.CreatedAt}
}

func (h *ContactsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())
	payload := httpx.PayloadFromContext(r.Context())
	name, _ := payload["name"].(string)
	phone, _ := payload["phone"].(string)

	contact, err := h.ContactService.Create(r.Context(), userID, name, phone)
	if err != nil {
		slogx.FromContext(r.Context()).Error("create contact failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
		return
	}
	httpx.WriteSuccess(w, http.StatusCreated, map[string]any{
		"message": msgContactCreated,
		"contact": toContactJSON(contact),
	})
}

func (h *ContactsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	contacts, err := h.ContactService.List(r.Context(), userID)
	if err != nil {
		slogx.FromContext(r.Context()).Error("list contacts failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
		return
	}

	out := make([]contactJSON, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, toContactJSON(c))
	}
	httpx.WriteSuccess(w, http.StatusOK, map[string]any{"contacts": out})
}

func (h *ContactsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	// An unparseable id cannot match any contact, same outcome as a
	// missing one.
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		httpx.WriteError(w, http.StatusNotFound, msgContactNotFound)
		return
	}

	err = h.ContactService.Delete(r.Context(), id, userID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgContactNotFound)
	case err != nil:
		slogx.FromContext(r.Context()).Error("delete contact failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.MsgInternal)
	default:
		httpx.WriteSuccess(w, http.StatusOK, map[string]string{"message": msgContactRemoved})
	}
}

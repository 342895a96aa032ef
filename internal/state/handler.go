package state

import (
	"net/http"
	"strconv"

	"chat-service/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) error {
	rid, _ := strconv.ParseInt(r.PathValue("room_id"), 10, 64)
	if rid == 0 {
		return httpx.ErrNotFound
	}
	v, err := h.svc.Fetch(rid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, v, http.StatusOK)
	return nil
}

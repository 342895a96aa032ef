package room

import (
	"net/http"
	"strconv"

	"chat-service/internal/shared/httpx"
)

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	rid, _ := strconv.ParseInt(r.PathValue("room_id"), 10, 64)
	if rid == 0 {
		return httpx.ErrNotFound
	}
	if err := h.svc.Join(rid, uid); err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	return nil
}

func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	rid, _ := strconv.ParseInt(r.PathValue("room_id"), 10, 64)
	if rid == 0 {
		return httpx.ErrNotFound
	}
	if err := h.svc.Heartbeat(rid, uid); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) Members(w http.ResponseWriter, r *http.Request) error {
	rid, _ := strconv.ParseInt(r.PathValue("room_id"), 10, 64)
	if rid == 0 {
		return httpx.ErrNotFound
	}
	members, err := h.svc.ListMembers(rid)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, map[string]any{"members": members}, http.StatusOK)
	return nil
}

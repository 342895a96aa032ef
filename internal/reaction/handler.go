package reaction

import (
	"fmt"
	"net/http"
	"strconv"

	"chat-service/internal/shared/httpx"
	"chat-service/internal/shared/validate"
)

type ReactReq struct {
	Emoji  string `json:"emoji" validate:"required"`
	Action string `json:"action" validate:"oneof=add remove"`
}

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) React(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	mid, _ := strconv.ParseInt(r.PathValue("message_id"), 10, 64)
	if mid == 0 {
		return httpx.ErrNotFound
	}
	in, err := httpx.Decode[ReactReq](r)
	if err != nil {
		return err
	}
	if in.Action == "" {
		in.Action = "add"
	}
	if err := validate.Struct(in); err != nil {
		return err
	}
	switch in.Action {
	case "add":
		err = h.svc.Add(mid, uid, in.Emoji)
	case "remove":
		err = h.svc.Remove(mid, uid, in.Emoji)
	default:
		err = fmt.Errorf("%w: unknown action %q", httpx.ErrValidation, in.Action)
	}
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

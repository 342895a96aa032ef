package attachment

import (
	"fmt"
	"net/http"
	"strconv"

	"chat-service/internal/shared/httpx"
)

// Uploads are capped well below typical reverse-proxy limits.
const maxUploadBytes = 25 << 20

type Handler struct{ svc Service }

func NewHandler(s Service) *Handler { return &Handler{svc: s} }

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) error {
	uid, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	// MaxBytesReader caps the whole request body; the multipart memory limit
	// below only bounds what is buffered in RAM, not what is read.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	rid, _ := strconv.ParseInt(r.FormValue("room_id"), 10, 64)
	if rid == 0 {
		return httpx.ErrNotFound
	}
	var replyTo *int64
	if s := r.FormValue("reply_to_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: bad reply_to_id: %v", httpx.ErrValidation, err)
		}
		replyTo = &id
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	defer file.Close()

	out, err := h.svc.Upload(r.Context(), uid, UploadReq{
		RoomID:    rid,
		Content:   r.FormValue("content"),
		ReplyToID: replyTo,
	}, file, header.Filename, header.Header.Get("Content-Type"), header.Size)
	if err != nil {
		return err
	}
	httpx.WriteJSON(w, out, http.StatusCreated)
	return nil
}

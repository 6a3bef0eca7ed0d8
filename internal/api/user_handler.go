package api

import (
	"net/http"

	"github.com/phrazzld/taskify-api/internal/api/shared"
	"github.com/phrazzld/taskify-api/internal/service"
	"github.com/phrazzld/taskify-api/internal/store"
)

// UserHandler handles user administration requests.
type UserHandler struct {
	users          service.UserService
	maxAvatarBytes int64
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users service.UserService, maxAvatarBytes int64) *UserHandler {
	return &UserHandler{users: users, maxAvatarBytes: maxAvatarBytes}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.users.List(r.Context(), listParamsFromQuery(r, store.UserFilterFields))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, "Users data fetched!", page.Items, page.Meta)
}

// ChangeStatus handles PATCH /users/{id}/status.
func (h *UserHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.ChangeStatus(r.Context(), id, req.Status)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Users profile status changed!", user)
}

// Update handles PATCH /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UserUpdateRequest
	body, err := decodeUpdate(r, &req, h.maxAvatarBytes)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	defer body.Close()

	if !validate(w, r, &req) {
		return
	}

	user, err := h.users.Update(r.Context(), id, body.avatar, req.toService())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "User data updated!", user)
}

// Delete handles DELETE /users/{id}.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.users.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "User data deleted!", user)
}

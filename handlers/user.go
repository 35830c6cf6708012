package handlers

import (
	"errors"
	"net/http"

	"mernspace-auth/dto"
	"mernspace-auth/helper"
	"mernspace-auth/middlewares"
	"mernspace-auth/models"
	"mernspace-auth/repository"
	"mernspace-auth/services"

	"go.uber.org/zap"
)

type UserHandler struct {
	users  *services.UserService
	logger *zap.SugaredLogger
}

func SetupUserRoutes(mux *http.ServeMux, users *services.UserService, guard middlewares.Middleware, logger *zap.SugaredLogger) {
	handler := UserHandler{
		users:  users,
		logger: logger,
	}
	mux.HandleFunc("POST /users", guard(handler.create))
	mux.HandleFunc("GET /users", guard(handler.getAll))
	mux.HandleFunc("GET /users/{id}", guard(handler.getOne))
	mux.HandleFunc("PATCH /users/{id}", guard(handler.update))
	mux.HandleFunc("DELETE /users/{id}", guard(handler.delete))
}

func (u *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload dto.CreateUserDto
	if err := helper.ReadAndValidate(w, r, &payload); err != nil {
		helper.WriteError(w, u.logger, err)
		return
	}

	u.logger.Debugw("New request to create user",
		"firstName", payload.FirstName,
		"lastName", payload.LastName,
		"email", payload.Email,
		"role", payload.Role,
		"password", "********",
	)

	user, err := u.users.Create(r.Context(), services.UserData{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  payload.Password,
		Role:      models.Role(payload.Role),
		TenantID:  payload.TenantID,
	})
	if err != nil {
		u.writeError(w, err)
		return
	}

	u.logger.Infow("User created successfully", "userId", user.ID)
	helper.WriteJson(w, http.StatusCreated, idResponse{ID: user.ID})
}

func (u *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user")
	if err != nil {
		helper.WriteError(w, u.logger, err)
		return
	}
	var payload dto.UpdateUserDto
	if err := helper.ReadAndValidate(w, r, &payload); err != nil {
		helper.WriteError(w, u.logger, err)
		return
	}

	fields := repository.UserUpdate{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	}
	if payload.TenantID.Set {
		fields.TenantID = payload.TenantID.Value
		fields.ClearTenant = payload.TenantID.Value == nil
	}
	if payload.Role != nil {
		role := models.Role(*payload.Role)
		fields.Role = &role
	}
	if err := u.users.Update(r.Context(), id, fields); err != nil {
		u.writeError(w, err)
		return
	}

	u.logger.Infow("User has been updated", "id", id)
	helper.WriteJson(w, http.StatusOK, idResponse{ID: id})
}

func (u *UserHandler) getAll(w http.ResponseWriter, r *http.Request) {
	q := listQueryFrom(r)
	users, total, err := u.users.FindAll(r.Context(), q)
	if err != nil {
		helper.WriteError(w, u.logger, err)
		return
	}
	helper.WriteJson(w, http.StatusOK, newListResponse(users, total, q))
}

func (u *UserHandler) getOne(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user")
	if err != nil {
		helper.WriteError(w, u.logger, err)
		return
	}
	user, err := u.users.FindByID(r.Context(), id)
	if err != nil {
		helper.WriteError(w, u.logger, httpErrorOf(err))
		return
	}
	helper.WriteJson(w, http.StatusOK, user)
}

func (u *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "user")
	if err != nil {
		helper.WriteError(w, u.logger, err)
		return
	}
	if err := u.users.DeleteByID(r.Context(), id); err != nil {
		helper.WriteError(w, u.logger, httpErrorOf(err))
		return
	}

	u.logger.Infow("User has been deleted", "id", id)
	helper.WriteJson(w, http.StatusOK, idResponse{ID: id})
}

// writeError reports an unknown tenant in the body as a bad request rather
// than a missing resource.
func (u *UserHandler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrTenantNotFound) {
		helper.WriteError(w, u.logger, helper.BadRequest("Tenant not found"))
		return
	}
	helper.WriteError(w, u.logger, httpErrorOf(err))
}

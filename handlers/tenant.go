package handlers

import (
	"net/http"

	"mernspace-auth/dto"
	"mernspace-auth/helper"
	"mernspace-auth/middlewares"
	"mernspace-auth/repository"
	"mernspace-auth/services"

	"go.uber.org/zap"
)

type TenantHandler struct {
	tenants *services.TenantService
	logger  *zap.SugaredLogger
}

// SetupTenantRoutes mounts tenant management behind guard.
func SetupTenantRoutes(mux *http.ServeMux, tenants *services.TenantService, guard middlewares.Middleware, logger *zap.SugaredLogger) {
	handler := TenantHandler{
		tenants: tenants,
		logger:  logger,
	}
	mux.HandleFunc("POST /tenants", guard(handler.create))
	mux.HandleFunc("GET /tenants", guard(handler.getAll))
	mux.HandleFunc("GET /tenants/{id}", guard(handler.getOne))
	mux.HandleFunc("PATCH /tenants/{id}", guard(handler.update))
	mux.HandleFunc("DELETE /tenants/{id}", guard(handler.delete))
}

func (t *TenantHandler) create(w http.ResponseWriter, r *http.Request) {
	var payload dto.CreateTenantDTO
	if err := helper.ReadAndValidate(w, r, &payload); err != nil {
		helper.WriteError(w, t.logger, err)
		return
	}

	t.logger.Debugw("New request to create tenant", "name", payload.Name, "address", payload.Address)
	tenant, err := t.tenants.Create(r.Context(), payload.Name, payload.Address)
	if err != nil {
		helper.WriteError(w, t.logger, httpErrorOf(err))
		return
	}

	t.logger.Infow("Tenant has been created", "id", tenant.ID)
	helper.WriteJson(w, http.StatusCreated, idResponse{ID: tenant.ID})
}

func (t *TenantHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tenant")
	if err != nil {
		helper.WriteError(w, t.logger, err)
		return
	}
	var payload dto.UpdateTenantDTO
	if err := helper.ReadAndValidate(w, r, &payload); err != nil {
		helper.WriteError(w, t.logger, err)
		return
	}

	err = t.tenants.Update(r.Context(), id, repository.TenantUpdate{Name: payload.Name, Address: payload.Address})
	if err != nil {
		helper.WriteError(w, t.logger, httpErrorOf(err))
		return
	}

	t.logger.Infow("Tenant has been updated", "id", id)
	helper.WriteJson(w, http.StatusOK, idResponse{ID: id})
}

func (t *TenantHandler) getAll(w http.ResponseWriter, r *http.Request) {
	q := listQueryFrom(r)
	tenants, total, err := t.tenants.GetAll(r.Context(), q)
	if err != nil {
		helper.WriteError(w, t.logger, err)
		return
	}
	helper.WriteJson(w, http.StatusOK, newListResponse(tenants, total, q))
}

func (t *TenantHandler) getOne(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tenant")
	if err != nil {
		helper.WriteError(w, t.logger, err)
		return
	}
	tenant, err := t.tenants.GetOne(r.Context(), id)
	if err != nil {
		helper.WriteError(w, t.logger, httpErrorOf(err))
		return
	}
	helper.WriteJson(w, http.StatusOK, tenant)
}

func (t *TenantHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "tenant")
	if err != nil {
		helper.WriteError(w, t.logger, err)
		return
	}
	if err := t.tenants.DeleteByID(r.Context(), id); err != nil {
		helper.WriteError(w, t.logger, httpErrorOf(err))
		return
	}

	t.logger.Infow("Tenant has been deleted", "id", id)
	helper.WriteJson(w, http.StatusOK, idResponse{ID: id})
}

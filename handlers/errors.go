package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mernspace-auth/helper"
	"mernspace-auth/repository"
	"mernspace-auth/services"
)

// httpErrorOf maps service and repository errors onto response errors.
// Unknown errors pass through and end up as 500.
func httpErrorOf(err error) error {
	switch {
	case errors.Is(err, services.ErrUserExists):
		return helper.BadRequest("Email is already exists!")
	case errors.Is(err, services.ErrInvalidCredentials):
		return helper.Unauthorized("Invalid credentials")
	case errors.Is(err, services.ErrRefreshTokenRevoked):
		return helper.Unauthorized("Refresh token is revoked")
	case errors.Is(err, services.ErrInvalidToken):
		return helper.Unauthorized("Invalid token")
	case errors.Is(err, repository.ErrUserNotFound):
		return helper.NotFound("User not found")
	case errors.Is(err, repository.ErrTenantNotFound):
		return helper.NotFound("Tenant not found")
	}
	return err
}

func pathID(r *http.Request, what string) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, helper.BadRequest("Invalid " + what + " ID")
	}
	return uint(id), nil
}

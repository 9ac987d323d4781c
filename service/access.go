package service

import (
	"strings"

	"cabcab/pkg/apperrors"
	"cabcab/pkg/models"
)

// requireRole is the single place role checks happen. Every operation
// calls it with the acting user resolved from the session.
func requireRole(actor *models.User, types ...models.UserType) error {
	if actor == nil {
		return apperrors.NotAuthenticated("you are not signed in")
	}
	for _, t := range types {
		if actor.UserType == t {
			return nil
		}
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return apperrors.Forbidden("access denied, this action requires one of these user types: %s",
		strings.Join(names, ", "))
}

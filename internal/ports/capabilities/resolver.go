package capabilities

import "context"

// PlanResolver responde el límite de mascotas del plan de un usuario.
// Un límite <= 0 significa "sin límite".
type PlanResolver interface {
	PetLimit(ctx context.Context, userID string) (int, error)
}

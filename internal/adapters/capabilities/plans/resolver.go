package plans

import (
	"context"
	"os"
	"strings"
)

// Resolver implementa capabilities.PlanResolver contra el servicio de
// planes. Con UNLIMITED_PETS=true (env) todo usuario queda sin límite
// (modo dev / fallback).
type Resolver struct {
	client    *Client
	unlimited bool
}

func NewResolver(client *Client) *Resolver {
	unlimited := strings.EqualFold(strings.TrimSpace(os.Getenv("UNLIMITED_PETS")), "true")
	return &Resolver{
		client:    client,
		unlimited: unlimited,
	}
}

// PetLimit devuelve el máximo de mascotas del plan del usuario.
// <= 0 significa "sin límite".
func (r *Resolver) PetLimit(ctx context.Context, userID string) (int, error) {
	if r.unlimited {
		return 0, nil
	}
	if r == nil || r.client == nil || !r.client.IsConfigured() {
		// Preferimos fallar explícito antes que permitir sin control.
		return 0, ErrPlansNotConfigured
	}

	resp, err := r.client.GetPlan(ctx, userID)
	if err != nil {
		return 0, err
	}
	return resp.MaxPets, nil
}

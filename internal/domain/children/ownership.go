package children

import "context"

// OwnerOf expone el ownerUserID de un niño.
// caregivers lo consume vía interfaz para no importar este paquete.
func (s *Service) OwnerOf(ctx context.Context, childID string) (string, error) {
	c, err := s.GetByID(ctx, childID)
	if err != nil {
		return "", err
	}
	return c.OwnerUserID, nil
}

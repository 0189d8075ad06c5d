package pets

import "context"

// NameOf devuelve el nombre de una mascota si pertenece a userID.
// Lo usa la variante canned para prefijar la frase sin importar pets completo.
func (s *Service) NameOf(ctx context.Context, userID, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	if p.UserID != userID {
		return "", ErrForbidden
	}
	return p.Name, nil
}

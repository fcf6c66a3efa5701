package children

import "context"

// Repository: GetByID y GetByExternalID devuelven ErrNotFound si no hay registro.
type Repository interface {
	Create(ctx context.Context, c Child) error
	Update(ctx context.Context, c Child) error
	GetByID(ctx context.Context, id string) (Child, error)
	GetByExternalID(ctx context.Context, ownerUserID, externalID string) (Child, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Child, error)
}

// BackendSource lista los niños del usuario en el backend remoto.
type BackendSource interface {
	ListChildren(ctx context.Context, token string) ([]RemoteChild, error)
}

// Cache guarda la última lista remota por usuario.
type Cache interface {
	Get(ctx context.Context, ownerUserID string) ([]RemoteChild, bool, error)
	Put(ctx context.Context, ownerUserID string, items []RemoteChild) error
}

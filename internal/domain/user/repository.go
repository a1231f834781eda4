package user

import "context"

type Repository interface {
	Create(ctx context.Context, item User) error
	GetByID(ctx context.Context, id string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	Update(ctx context.Context, item User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

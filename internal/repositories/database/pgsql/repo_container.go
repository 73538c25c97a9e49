package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the pgx-backed repositories over a shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:   NewUserRepository(pool),
		PhotoRepo:  NewPhotoRepository(pool),
		CourseRepo: NewCourseRepository(pool),
	}
}

package repositories

// RepositoryProvider bundles the concrete repositories handed to the service
// container.
type RepositoryProvider struct {
	UserRepo   UserRepository
	PhotoRepo  PhotoRepository
	CourseRepo CourseRepository
}

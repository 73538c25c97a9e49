package services

import (
	portsrepo "github.com/julianojcs/ibs/internal/core/ports/repositories"
	portssvc "github.com/julianojcs/ibs/internal/core/ports/services"
	"github.com/julianojcs/ibs/internal/platform/config"
)

// NewServiceContainer wires the full service graph over the repositories and
// the platform adapters (mailer, image host).
func NewServiceContainer(
	repos *portsrepo.RepositoryProvider,
	mailer portssvc.MailerSvc,
	images portssvc.ImageStorageSvc,
	cfg *config.Config,
) *portssvc.ServiceContainer {
	auth := NewAuthService(repos.UserRepo, mailer, cfg)
	session := NewSessionService(cfg)
	oauth := NewGoogleOAuthService(cfg)
	linker := NewAccountLinkerService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		Auth:        auth,
		Session:     session,
		GoogleOAuth: oauth,
		Linker:      linker,
		User:        NewUserService(repos.UserRepo, mailer, cfg),
		Photo:       NewPhotoService(repos.PhotoRepo, images),
		Course:      NewCourseService(repos.CourseRepo),
		Mailer:      mailer,
		Images:      images,

		CredentialsProvider: NewCredentialsProvider(auth),
		GoogleProvider:      NewGoogleProvider(oauth, linker),
	}
}

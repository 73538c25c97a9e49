package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Auth        AuthSvcFacade
	Session     SessionSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	Linker      AccountLinkerSvcFacade
	User        UserSvcFacade
	Photo       PhotoSvcFacade
	Course      CourseSvcFacade
	Mailer      MailerSvc
	Images      ImageStorageSvc

	// Providers keyed by mechanism; the login and exchange-code handlers
	// authenticate through these.
	CredentialsProvider AuthProvider
	GoogleProvider      AuthProvider
}

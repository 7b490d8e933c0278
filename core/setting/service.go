package setting

type (
	// Repository is the storage contract for the settings singletons. The
	// API key lives under its own storage key, distinct from the structured
	// settings blob.
	Repository interface {
		// GetSettings returns Defaults() when nothing has been saved yet.
		GetSettings() (AppSettings, error)
		SaveSettings(s AppSettings) error
		GetAPIKey() (string, error) // empty string when unset
		SaveAPIKey(key string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Get() (AppSettings, error) {
	return svc.repo.GetSettings()
}

func (svc *Service) Save(s AppSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return svc.repo.SaveSettings(s)
}

func (svc *Service) APIKey() (string, error) {
	return svc.repo.GetAPIKey()
}

func (svc *Service) SaveAPIKey(key string) error {
	return svc.repo.SaveAPIKey(key)
}

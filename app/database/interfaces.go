package database

type SettingsRepository interface {
	Get(key string) (string, bool, error)
	GetAll() (map[string]string, error)
	Set(key string, value string) error
	Delete(key string) error
}

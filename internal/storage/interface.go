package storage

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value surface. Get reports ok=false for a missing key; a
	// missing key is never an error.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	AllKeys() ([]string, error)

	// Utils
	GetConfigPath() string
}

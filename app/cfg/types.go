package cfg

type Cfg struct {
	// Storage configuration
	DBPath     string
	PresetsDir string

	// Application configuration
	Port            string
	WorkerCount     int
	RefreshInterval int
	RateLimit       float64

	// Application metadata
	UserAgent string
	Debug     bool
	Version   string
}

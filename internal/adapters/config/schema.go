package config

// configDTO represents the structure of the cpm.yaml configuration file.
type configDTO struct {
	Registry     string `yaml:"registry"`
	CacheDir     string `yaml:"cache_dir"`
	FetchWorkers int    `yaml:"fetch_workers"`
	HTTPTimeout  string `yaml:"http_timeout"`
}

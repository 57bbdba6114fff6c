package config

// Configfile represents the structure of the darkmagic.yaml configuration file.
type Configfile struct {
	Version string   `yaml:"version"`
	Output  string   `yaml:"output"`
	Jobs    int      `yaml:"jobs"`
	Cache   CacheDTO `yaml:"cache"`
}

// CacheDTO represents the cache section of the configuration.
type CacheDTO struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

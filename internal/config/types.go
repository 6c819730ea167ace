package config

// Config is the top-level docview configuration, corresponding to .docview.yml.
type Config struct {
	ProjectName    string   `yaml:"project_name" koanf:"project_name"`
	SourceDir      string   `yaml:"source_dir" koanf:"source_dir"`
	SiteDir        string   `yaml:"site_dir" koanf:"site_dir"`
	Include        []string `yaml:"include" koanf:"include"`
	Exclude        []string `yaml:"exclude" koanf:"exclude"`
	ExpansionLevel int      `yaml:"expansion_level" koanf:"expansion_level"`
	Theme          string   `yaml:"theme" koanf:"theme"`
	Server         Server   `yaml:"server" koanf:"server"`
}

// Server holds settings for `docview serve`.
type Server struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	SessionIdle     string `yaml:"session_idle" koanf:"session_idle"`
	Watch           bool   `yaml:"watch" koanf:"watch"`
}

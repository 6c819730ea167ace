package config

// DefaultExcludes are glob patterns left out of the generated site by default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	"*.min.js",
	"*.min.css",
	"*.lock",
	"go.sum",
	"package-lock.json",
	"yarn.lock",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ProjectName:    "",
		SourceDir:      ".",
		SiteDir:        "docview-site",
		Include:        []string{"**"},
		Exclude:        DefaultExcludes,
		ExpansionLevel: 1,
		Theme:          "root",
		Server: Server{
			Port:        8080,
			SessionIdle: "30m",
			Watch:       true,
		},
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// projectTypePatterns maps marker files to human-readable project types
// and a recommended include glob.
var projectTypePatterns = map[string]struct {
	Name    string
	Include string
}{
	"go.mod":           {Name: "Go", Include: "**/*.go"},
	"package.json":     {Name: "Node.js/TypeScript", Include: "**/*.{js,ts,jsx,tsx}"},
	"requirements.txt": {Name: "Python", Include: "**/*.py"},
	"pyproject.toml":   {Name: "Python", Include: "**/*.py"},
	"Cargo.toml":       {Name: "Rust", Include: "**/*.rs"},
	"pom.xml":          {Name: "Java", Include: "**/*.java"},
	"CMakeLists.txt":   {Name: "C/C++", Include: "**/*.{c,cc,cpp,h,hpp}"},
}

// detectProjectType checks the current directory for well-known project markers.
func detectProjectType() (name string, include string) {
	for marker, info := range projectTypePatterns {
		matches, _ := filepath.Glob(marker)
		if len(matches) > 0 {
			return info.Name, info.Include
		}
	}
	return "", "**"
}

func projectNameFrom(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "Documentation"
	}
	name := filepath.Base(abs)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "Documentation"
	}
	return name
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to docview! Let's configure your project.")
	fmt.Println()

	projType, defaultInclude := detectProjectType()
	if projType != "" {
		fmt.Printf("Detected project type: %s\n\n", projType)
	}

	namePrompt := promptui.Prompt{
		Label:   "Project name",
		Default: projectNameFrom("."),
	}
	name, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("project name: %w", err)
	}

	siteprompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: "docview-site",
	}
	siteDir, err := siteprompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}

	includePrompt := promptui.Prompt{
		Label:   "Include patterns (comma-separated globs)",
		Default: defaultInclude,
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}

	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := append([]string(nil), DefaultExcludes...)
	exclude = append(exclude, splitAndTrim(excludeStr)...)

	levelPrompt := promptui.Select{
		Label: "Directory tree depth shown when a page opens",
		Items: []string{
			"1: top-level entries only",
			"2: one folder level expanded",
			"3: two folder levels expanded",
		},
	}
	levelIdx, _, err := levelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("expansion level: %w", err)
	}

	portPrompt := promptui.Prompt{
		Label:   "Port for docview serve",
		Default: "8080",
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p <= 0 || p > 65535 {
				return fmt.Errorf("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg := DefaultConfig()
	cfg.ProjectName = name
	cfg.SiteDir = siteDir
	cfg.Include = splitAndTrim(includeStr)
	cfg.Exclude = exclude
	cfg.ExpansionLevel = levelIdx + 1
	cfg.Server.Port = port

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	if _, err := os.Stat(cfg.SourceDir); err != nil {
		fmt.Printf("\nNote: source directory %s is not readable yet.\n", cfg.SourceDir)
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}

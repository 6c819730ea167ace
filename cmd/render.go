package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/docview/internal/config"
	"github.com/ziadkadry99/docview/internal/markup"
	"github.com/ziadkadry99/docview/internal/toggler"
	"github.com/ziadkadry99/docview/internal/view"
)

var renderCmd = &cobra.Command{
	Use:   "render <page.html>",
	Short: "Apply toggle commands to a generated page and print the result",
	Long: `Loads a page from the site directory, applies the requested toggles in
order (level, folders, inherited groups, sections, fold regions, fold-all)
and writes the projected HTML to stdout or --out.

Example:
  docview render files.html --level 2 --folder 1_0
  docview render source/internal-config/config.go.html --fold-all
  docview render --file ./page.html --theme nested --region 00001`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("site", "", "site directory (overrides config)")
	renderCmd.Flags().Bool("file", false, "treat the argument as a file path outside the site")
	renderCmd.Flags().String("theme", "", "asset variant for --file pages: root or nested (default from config)")
	renderCmd.Flags().Int("level", 0, "set the directory expansion level")
	renderCmd.Flags().StringSlice("folder", nil, "toggle a directory row (repeatable)")
	renderCmd.Flags().StringSlice("inherit", nil, "toggle an inherited member group (repeatable)")
	renderCmd.Flags().StringSlice("section", nil, "toggle a collapsible section (repeatable)")
	renderCmd.Flags().StringSlice("region", nil, "toggle a fold region (repeatable)")
	renderCmd.Flags().Bool("fold-all", false, "flip every fold region at once")
	renderCmd.Flags().Bool("state", false, "print the view state as JSON instead of HTML")
	renderCmd.Flags().StringP("out", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cmds, err := renderCommands(cmd)
	if err != nil {
		return err
	}

	v, err := openView(cmd, args[0])
	if err != nil {
		return err
	}
	for _, c := range cmds {
		res, err := v.Execute(c)
		if err != nil {
			return err
		}
		debugf("%s %s -> open=%v\n", c.Op, c.Target, res.Open)
	}

	var w io.Writer = cmd.OutOrStdout()
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	if asState, _ := cmd.Flags().GetBool("state"); asState {
		return writeJSON(w, v.Snapshot())
	}
	return v.Render(w)
}

// openView loads the page either from the site directory, where its
// location picks the variant, or with --file from any path using the
// configured theme.
func openView(cmd *cobra.Command, arg string) (*view.View, error) {
	fileMode, _ := cmd.Flags().GetBool("file")
	theme, _ := cmd.Flags().GetString("theme")
	siteDir, _ := cmd.Flags().GetString("site")

	var (
		path    string
		variant toggler.Variant
	)
	switch {
	case fileMode:
		path = arg
		if theme != "" {
			v, err := toggler.ParseVariant(theme)
			if err != nil {
				return nil, err
			}
			variant = v
		} else if cfg, err := config.Load(cfgFile); err == nil {
			variant = cfg.Variant()
		}
	default:
		if siteDir == "" {
			cfg, err := loadConfig()
			if err != nil {
				return nil, err
			}
			if err := requireSite(cfg); err != nil {
				return nil, err
			}
			siteDir = cfg.SiteDir
		}
		rel, err := view.CleanPath(arg)
		if err != nil {
			return nil, err
		}
		path = filepath.Join(siteDir, filepath.FromSlash(rel))
		variant = view.VariantFor(rel)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	defer f.Close()

	page, err := markup.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return view.New(arg, page, variant, 0), nil
}

// renderCommands turns the flags into commands in a fixed order.
func renderCommands(cmd *cobra.Command) ([]view.Command, error) {
	var cmds []view.Command
	if level, _ := cmd.Flags().GetInt("level"); cmd.Flags().Changed("level") {
		cmds = append(cmds, view.Command{Op: view.OpSetLevel, Level: level})
	}
	for _, f := range []struct {
		flag string
		op   view.Op
	}{
		{"folder", view.OpToggleFolder},
		{"inherit", view.OpToggleInherit},
		{"section", view.OpToggleSection},
		{"region", view.OpFoldRegion},
	} {
		targets, _ := cmd.Flags().GetStringSlice(f.flag)
		for _, t := range targets {
			cmds = append(cmds, view.Command{Op: f.op, Target: t})
		}
	}
	if foldAll, _ := cmd.Flags().GetBool("fold-all"); foldAll {
		cmds = append(cmds, view.Command{Op: view.OpFoldAll})
	}
	for _, c := range cmds {
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return cmds, nil
}

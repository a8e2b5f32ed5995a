// Package cmd wires flags, the optional config file, and the patch source
// into the GUI runtime.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hexbee/git-diff-viewer/internal/buildinfo"
	"github.com/hexbee/git-diff-viewer/internal/config"
	"github.com/hexbee/git-diff-viewer/internal/gui"
	"github.com/hexbee/git-diff-viewer/internal/nav"
	"github.com/hexbee/git-diff-viewer/internal/source"
)

func Run() error {
	return run(os.Args[1:], os.Stdin)
}

func run(args []string, stdin io.Reader) error {
	fs := flag.NewFlagSet("git-diff-viewer", flag.ContinueOnError)
	mode := fs.String("mode", "", "color mode: auto, light, or dark")
	viewMode := fs.String("view", "", "diff layout: unified or split")
	gitRepo := fs.String("git", "", "derive the patch from the git repository at the given path")
	staged := fs.Bool("staged", false, "with -git, diff the index instead of the worktree")
	revRange := fs.String("range", "", "with -git, diff a revision range <from>..<to>")
	configPath := fs.String("config", "", "path to the YAML config file")
	noConfig := fs.Bool("noconfig", false, "disable config file loading")
	noWatch := fs.Bool("nowatch", false, "disable automatic reload when the patch changes on disk")
	noSyntax := fs.Bool("nosyntax", false, "disable syntax highlighting in the diff panes")
	noTree := fs.Bool("notree", false, "hide the file tree on startup")
	whitespace := fs.Bool("whitespace", false, "render whitespace markers")
	indentGuides := fs.Bool("indent-guides", false, "render indentation guides")
	verbose := fs.Bool("verbose", false, "enable verbose logging")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Println(buildinfo.String())
		return nil
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var file config.File
	if !*noConfig {
		var err error
		if file, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	st := resolveSettings(flagSettings{
		Mode:           *mode,
		View:           *viewMode,
		NoTree:         *noTree,
		NoSyntax:       *noSyntax,
		ShowWhitespace: *whitespace,
		IndentGuides:   *indentGuides,
		NoWatch:        *noWatch,
	}, explicit, file)

	src, err := selectSource(*gitRepo, *staged, *revRange, fs.Args(), stdin)
	if err != nil {
		return err
	}

	initialView := nav.ViewUnified
	if st.View == "split" {
		initialView = nav.ViewSplit
	}
	return gui.Run(gui.RunConfig{
		Source:          src,
		ThemePreference: gui.ThemePreferenceFromString(st.Mode),
		ViewMode:        initialView,
		TreeVisible:     st.TreeVisible,
		SyntaxHighlight: st.SyntaxHighlight,
		ShowWhitespace:  st.ShowWhitespace,
		IndentGuides:    st.IndentGuides,
		AutoReload:      st.AutoReload,
		Verbose:         *verbose,
	})
}

// settings is the merged view of defaults, config file, and flags.
type settings struct {
	Mode            string
	View            string
	TreeVisible     bool
	SyntaxHighlight bool
	ShowWhitespace  bool
	IndentGuides    bool
	AutoReload      bool
}

type flagSettings struct {
	Mode           string
	View           string
	NoTree         bool
	NoSyntax       bool
	ShowWhitespace bool
	IndentGuides   bool
	NoWatch        bool
}

func defaultSettings() settings {
	return settings{
		Mode:            "auto",
		View:            nav.ViewUnified.String(),
		TreeVisible:     true,
		SyntaxHighlight: true,
		AutoReload:      true,
	}
}

// resolveSettings merges in precedence order: explicitly set flags beat the
// config file, which beats the defaults.
func resolveSettings(flags flagSettings, explicit map[string]bool, file config.File) settings {
	st := defaultSettings()

	st.Mode = config.StringOr(file.Mode, st.Mode)
	st.View = config.StringOr(file.View, st.View)
	st.TreeVisible = config.BoolOr(file.TreeVisible, st.TreeVisible)
	st.SyntaxHighlight = config.BoolOr(file.SyntaxHighlight, st.SyntaxHighlight)
	st.ShowWhitespace = config.BoolOr(file.ShowWhitespace, st.ShowWhitespace)
	st.IndentGuides = config.BoolOr(file.IndentGuides, st.IndentGuides)
	st.AutoReload = config.BoolOr(file.AutoReload, st.AutoReload)

	if explicit["mode"] {
		st.Mode = flags.Mode
	}
	if explicit["view"] {
		st.View = flags.View
	}
	if explicit["notree"] {
		st.TreeVisible = !flags.NoTree
	}
	if explicit["nosyntax"] {
		st.SyntaxHighlight = !flags.NoSyntax
	}
	if explicit["whitespace"] {
		st.ShowWhitespace = flags.ShowWhitespace
	}
	if explicit["indent-guides"] {
		st.IndentGuides = flags.IndentGuides
	}
	if explicit["nowatch"] {
		st.AutoReload = !flags.NoWatch
	}
	return st
}

func selectSource(gitRepo string, staged bool, revRange string, positional []string, stdin io.Reader) (source.Source, error) {
	if gitRepo != "" {
		if revRange != "" {
			from, to, err := splitRange(revRange)
			if err != nil {
				return nil, err
			}
			return source.RangeSource{Repo: gitRepo, From: from, To: to}, nil
		}
		return source.WorktreeSource{Repo: gitRepo, Staged: staged}, nil
	}
	if revRange != "" || staged {
		return nil, fmt.Errorf("-range and -staged require -git")
	}
	if len(positional) == 0 {
		return nil, fmt.Errorf("no patch input: pass a patch file, \"-\" for stdin, or -git")
	}
	path := positional[len(positional)-1]
	if path == "-" {
		return source.ReadStdin(stdin)
	}
	return source.FileSource{Path: path}, nil
}

func splitRange(revRange string) (from, to string, err error) {
	from, to, ok := strings.Cut(revRange, "..")
	if !ok || from == "" || to == "" {
		return "", "", fmt.Errorf("invalid range %q: expected <from>..<to>", revRange)
	}
	return from, to, nil
}

package cmd

import (
	"strings"
	"testing"

	"github.com/hexbee/git-diff-viewer/internal/config"
	"github.com/hexbee/git-diff-viewer/internal/source"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestResolveSettingsDefaults(t *testing.T) {
	st := resolveSettings(flagSettings{}, map[string]bool{}, config.File{})
	if st.Mode != "auto" || st.View != "unified" {
		t.Fatalf("unexpected defaults %+v", st)
	}
	if !st.TreeVisible || !st.SyntaxHighlight || !st.AutoReload {
		t.Fatalf("unexpected default toggles %+v", st)
	}
	if st.ShowWhitespace || st.IndentGuides {
		t.Fatalf("whitespace and indent guides should default off: %+v", st)
	}
}

func TestResolveSettingsConfigOverridesDefaults(t *testing.T) {
	file := config.File{
		Mode:            strPtr("dark"),
		View:            strPtr("split"),
		SyntaxHighlight: boolPtr(false),
	}
	st := resolveSettings(flagSettings{}, map[string]bool{}, file)
	if st.Mode != "dark" || st.View != "split" || st.SyntaxHighlight {
		t.Fatalf("config values not applied: %+v", st)
	}
	if !st.TreeVisible {
		t.Fatalf("unset config field clobbered default: %+v", st)
	}
}

func TestResolveSettingsFlagsBeatConfig(t *testing.T) {
	file := config.File{
		Mode:       strPtr("dark"),
		AutoReload: boolPtr(true),
	}
	flags := flagSettings{Mode: "light", NoWatch: true}
	explicit := map[string]bool{"mode": true, "nowatch": true}
	st := resolveSettings(flags, explicit, file)
	if st.Mode != "light" {
		t.Fatalf("explicit -mode should win, got %q", st.Mode)
	}
	if st.AutoReload {
		t.Fatalf("explicit -nowatch should win over config")
	}
}

func TestSelectSourceFile(t *testing.T) {
	src, err := selectSource("", false, "", []string{"changes.patch"}, nil)
	if err != nil {
		t.Fatalf("selectSource: %v", err)
	}
	fileSrc, ok := src.(source.FileSource)
	if !ok || fileSrc.Path != "changes.patch" {
		t.Fatalf("unexpected source %#v", src)
	}
}

func TestSelectSourceStdin(t *testing.T) {
	src, err := selectSource("", false, "", []string{"-"}, strings.NewReader("diff --git a/x b/x\n"))
	if err != nil {
		t.Fatalf("selectSource: %v", err)
	}
	text, err := src.Load()
	if err != nil || !strings.HasPrefix(text, "diff --git") {
		t.Fatalf("unexpected stdin source result %q, %v", text, err)
	}
}

func TestSelectSourceGit(t *testing.T) {
	src, err := selectSource("/repo", true, "", nil, nil)
	if err != nil {
		t.Fatalf("selectSource: %v", err)
	}
	wt, ok := src.(source.WorktreeSource)
	if !ok || wt.Repo != "/repo" || !wt.Staged {
		t.Fatalf("unexpected source %#v", src)
	}

	src, err = selectSource("/repo", false, "main..feature", nil, nil)
	if err != nil {
		t.Fatalf("selectSource: %v", err)
	}
	rng, ok := src.(source.RangeSource)
	if !ok || rng.From != "main" || rng.To != "feature" {
		t.Fatalf("unexpected source %#v", src)
	}
}

func TestSelectSourceErrors(t *testing.T) {
	if _, err := selectSource("", false, "", nil, nil); err == nil {
		t.Fatalf("expected error without input")
	}
	if _, err := selectSource("", true, "", []string{"p"}, nil); err == nil {
		t.Fatalf("-staged without -git should fail")
	}
	if _, err := selectSource("/repo", false, "oops", nil, nil); err == nil {
		t.Fatalf("expected error for malformed range")
	}
}

func TestSplitRange(t *testing.T) {
	from, to, err := splitRange("v1.0..v2.0")
	if err != nil || from != "v1.0" || to != "v2.0" {
		t.Fatalf("splitRange: %q %q %v", from, to, err)
	}
	for _, bad := range []string{"", "..", "a..", "..b", "plain"} {
		if _, _, err := splitRange(bad); err == nil {
			t.Fatalf("splitRange(%q) should fail", bad)
		}
	}
}

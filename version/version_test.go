package version

import (
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, branch, buildTime, goVersion string) {
	t.Helper()
	orig := [...]string{Version, GitCommit, GitBranch, BuildTime, GoVersion}
	t.Cleanup(func() {
		Version, GitCommit, GitBranch, BuildTime, GoVersion = orig[0], orig[1], orig[2], orig[3], orig[4]
	})
	Version, GitCommit, GitBranch, BuildTime, GoVersion = version, commit, branch, buildTime, goVersion
}

func TestGetStamped(t *testing.T) {
	stamp(t, "1.0.0", "abc1234", "main", "2024-01-15T10:30:00Z", "go1.26.0")

	info := Get()
	if info.Version != "1.0.0" || !info.IsRelease {
		t.Errorf("version = %q release = %v", info.Version, info.IsRelease)
	}
	if info.GitCommit != "abc1234" || info.GoVersion != "go1.26.0" {
		t.Errorf("commit = %q go = %q", info.GitCommit, info.GoVersion)
	}
	if info.BuildDate.Year() != 2024 {
		t.Errorf("build year = %d", info.BuildDate.Year())
	}
}

func TestGetDev(t *testing.T) {
	stamp(t, "dev", "", "", "", "")
	if info := Get(); info.IsRelease || info.Version != "dev" {
		t.Errorf("dev build reported as %+v", info)
	}

	stamp(t, "1.0.0-dirty", "", "", "", "")
	if Get().IsRelease {
		t.Error("dirty version reported as a release")
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	stamp(t, "1.0.0", "abc1234", "feature/chains", "2024-01-15T10:30:00Z", "go1.26.0")

	s := Get().String()
	for _, want := range []string{"1.0.0-abc1234-feature/chains", "built 2024-01-15T10:30:00Z", "go1.26.0"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}

	stamp(t, "1.0.0", "abc1234", "main", "", "go1.26.0")
	if s := Get().String(); strings.Contains(s, "main") {
		t.Errorf("main branch leaked into %q", s)
	}
}

func TestUserAgent(t *testing.T) {
	stamp(t, "2.1.0", "", "", "", "")
	if ua := UserAgent(); !strings.HasPrefix(ua, "nlpwire/2.1.0") {
		t.Errorf("UserAgent() = %q", ua)
	}
}

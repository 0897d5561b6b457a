package version

import (
	"strings"
	"testing"
)

func TestGetters(t *testing.T) {
	origDate, origCommit := BuildDate, GitCommit
	t.Cleanup(func() {
		BuildDate, GitCommit = origDate, origCommit
	})

	BuildDate = "2026-01-02"
	GitCommit = "deadbeef"

	if GetVersion() != Version {
		t.Errorf("GetVersion() = %s, want %s", GetVersion(), Version)
	}
	if GetBuildDate() != "2026-01-02" {
		t.Errorf("GetBuildDate() = %s", GetBuildDate())
	}
	if GetGitCommit() != "deadbeef" {
		t.Errorf("GetGitCommit() = %s", GetGitCommit())
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "prompt-copilot/"+Version+" (") {
		t.Errorf("UserAgent() = %s", ua)
	}
}

package buildinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version || info.Commit != Commit || info.BuildTime != BuildTime {
		t.Errorf("Get() = %+v, does not mirror the ldflags variables", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
}

func TestString(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()
	Version = "v1.2.3"

	if s := String(); !strings.HasPrefix(s, "v1.2.3 (") {
		t.Errorf("String() = %q", s)
	}
	if ua := UserAgent(); ua != "easycar/v1.2.3" {
		t.Errorf("UserAgent() = %q", ua)
	}
}

package storage

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestBadgerStore_RegisterMetrics(t *testing.T) {
	s, err := NewBadgerStore(t.TempDir(), BadgerConfig{}, nil)
	if err != nil {
		t.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	if err := s.RegisterMetrics(reg); err != nil {
		t.Fatalf("RegisterMetrics() error = %v", err)
	}
	if err := s.RegisterMetrics(reg); err == nil {
		t.Error("registering twice should fail")
	}

	if n, err := testutil.GatherAndCount(reg, "easycar_badger_size_bytes"); err != nil || n != 1 {
		t.Errorf("GatherAndCount() = (%d, %v), want 1 series", n, err)
	}

	if err := s.Set(context.Background(), DefaultTokenKey, "tok"); err != nil {
		t.Fatal(err)
	}
	before := gaugeValue(t, reg, "easycar_badger_size_bytes")
	s.Close()
	if after := gaugeValue(t, reg, "easycar_badger_size_bytes"); after != before {
		t.Errorf("size after Close = %v, want %v", after, before)
	}
}

func TestRegisterMetrics_LooksThroughSealing(t *testing.T) {
	badgerStore, err := NewBadgerStore(t.TempDir(), BadgerConfig{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer badgerStore.Close()
	sealed, err := NewSealedStore(badgerStore, []byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		store TokenStore
		want  int
	}{
		{"sealed badger", sealed, 1},
		{"memory", NewMemoryStore(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			if err := RegisterMetrics(tt.store, reg); err != nil {
				t.Fatalf("RegisterMetrics() error = %v", err)
			}
			if n, _ := testutil.GatherAndCount(reg, "easycar_badger_size_bytes"); n != tt.want {
				t.Errorf("series = %d, want %d", n, tt.want)
			}
		})
	}
}

func gaugeValue(t *testing.T, g prometheus.Gatherer, name string) float64 {
	t.Helper()
	families, err := g.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, mf := range families {
		if mf.GetName() == name && len(mf.GetMetric()) == 1 {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	t.Fatalf("gauge %s not gathered", name)
	return 0
}

func TestBadgerLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := &badgerLogger{logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))}

	l.Infof("compaction %d", 1)
	l.Debugf("level %d", 2)
	if buf.Len() != 0 {
		t.Errorf("info and debug should be below the threshold, got %q", buf.String())
	}

	l.Warningf("slow %s", "disk")
	l.Errorf("broken %s", "table")
	out := buf.String()
	for _, want := range []string{"level=WARN", "slow disk", "level=ERROR", "broken table"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

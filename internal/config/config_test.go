package config

import (
	"errors"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]string{"events.txt"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.InputFile != "events.txt" {
		t.Fatalf("unexpected input file: %q", cfg.InputFile)
	}
	if cfg.TickScale != 100 || cfg.SnapshotEvery != 0 || cfg.Depth != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseBothFlagSyntaxes(t *testing.T) {
	cfg, err := Parse([]string{
		"events.txt",
		"--tick-scale", "1000",
		"--snapshot-every=50",
		"--snap-dir", "out/snaps",
		"--trades-csv=out/trades.csv",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.TickScale != 1000 || cfg.SnapshotEvery != 50 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.SnapshotDir != "out/snaps" || cfg.TradesCSV != "out/trades.csv" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestParseErrorsExitWithCode2(t *testing.T) {
	cases := [][]string{
		{},                                    // missing input file
		{"events.txt", "--no-such-flag", "x"}, // unknown flag
		{"events.txt", "--tick-scale"},        // missing value
		{"events.txt", "--tick-scale", "0"},   // non-positive scale
		{"events.txt", "--snapshot-every", "-1"},
		{"events.txt", "--depth", "nope"},
	}
	for _, args := range cases {
		_, err := Parse(args)
		if err == nil {
			t.Fatalf("expected error for args %v", args)
		}
		if ExitCode(err) != 2 {
			t.Fatalf("expected exit code 2 for args %v, got %d", args, ExitCode(err))
		}
	}
}

func TestExitCodeZeroForForeignErrors(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Fatalf("expected 0 for nil error")
	}
	if ExitCode(errors.New("open input: no such file")) != 0 {
		t.Fatalf("expected 0 for a non-config error")
	}
}

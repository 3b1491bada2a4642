package main

import "testing"

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown flag", []string{"-nope"}, 2},
		{"bad mode", []string{"-mode", "chaos"}, 2},
		{"bad policy", []string{"-illegal-policy", "maybe"}, 2},
		{"listen fails", []string{"-addr", "127.0.0.1:-1", "-no-browser"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Fatalf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

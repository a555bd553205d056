// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"testing"
)

func TestGetAPIURL_Default(t *testing.T) {
	resetFlags(t)

	url := GetAPIURL()
	if url != "http://localhost:8080" {
		t.Errorf("expected default URL http://localhost:8080, got %s", url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	resetFlags(t)
	t.Setenv("CODSIM_API_URL", "http://backend.example.com")

	url := GetAPIURL()
	if url != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	resetFlags(t)
	t.Setenv("CODSIM_API_URL", "http://backend.example.com")
	apiURL = "http://flag-override.example.com"

	url := GetAPIURL()
	if url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestJSONOutput(t *testing.T) {
	resetFlags(t)
	jsonOutput = true

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	want := []string{"simulate", "breakeven", "scenarios", "advice", "levers", "check", "markets", "budget", "health", "history"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

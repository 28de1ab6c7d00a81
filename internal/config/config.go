package config

import (
	"os"
	"path/filepath"
)

type Config struct {
	VaultPath     string
	Listen        string
	Serve         bool
	Theme         string
	TreeWidth     int
	ShowTree      bool
	ShowStatus    bool
	LeaderKey     string
	LeaderTimeout int // milliseconds
	Editor        string
	Debug         bool
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		VaultPath:     filepath.Join(home, "notes"),
		Listen:        ":2222",
		Serve:         false,
		Theme:         "catppuccin",
		TreeWidth:     30,
		ShowTree:      true,
		ShowStatus:    true,
		LeaderKey:     " ",
		LeaderTimeout: 500,
	}
}

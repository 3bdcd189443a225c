package cliconfig

import (
	"os"
	"path/filepath"

	"github.com/getshelfd/shelfd/pkg/auth"
)

// DefaultTokenFileName is the file name for the persisted bearer token.
const DefaultTokenFileName = "token"

// DefaultTokenFilePath returns the default token file location:
// $XDG_DATA_HOME/shelfd/token (or ~/.local/share/shelfd/token).
func DefaultTokenFilePath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "shelfd", DefaultTokenFileName)
}

// ResolveTokenSource picks the credential source in priority order:
// 1. SHELFD_TOKEN environment variable
// 2. The configured token file
// 3. The default token file, if it exists
// 4. Anonymous
func ResolveTokenSource(cfg *CLIConfig) auth.TokenSource {
	if token := GetTokenFromEnv(); token != "" {
		return auth.Static(token)
	}
	if cfg != nil && cfg.TokenFile != "" {
		return auth.NewFileSource(cfg.TokenFile)
	}
	if path := DefaultTokenFilePath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return auth.NewFileSource(path)
		}
	}
	return auth.None()
}

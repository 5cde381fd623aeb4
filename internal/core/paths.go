package core

import (
	"os"
	"path/filepath"
)

const appName = "pmfzf"

type Paths struct {
	DataDir    string
	ConfigFile string
	CacheDir   string
	LogFile    string
}

var defaultPaths *Paths

func ensureDefaultPaths() {
	if defaultPaths != nil {
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}

	configRoot, err := os.UserConfigDir()
	if err != nil {
		configRoot = filepath.Join(homeDir, ".config")
	}

	cacheRoot, err := os.UserCacheDir()
	if err != nil {
		cacheRoot = filepath.Join(homeDir, ".cache")
	}

	dataDir := filepath.Join(homeDir, "."+appName)
	configDir := filepath.Join(configRoot, appName)

	defaultPaths = &Paths{
		DataDir:    dataDir,
		ConfigFile: filepath.Join(configDir, "config.yaml"),
		CacheDir:   filepath.Join(cacheRoot, appName),
		LogFile:    filepath.Join(dataDir, appName+".log"),
	}

	// The log file lives here; a failure surfaces when the logger opens it.
	_ = os.MkdirAll(defaultPaths.DataDir, 0755)
}

// ConfigFile is the default location of config.yaml. It may not exist.
func ConfigFile() string {
	ensureDefaultPaths()
	return defaultPaths.ConfigFile
}

// CacheDir is the default root of the per-tool completion caches. It is
// created on first write, not here.
func CacheDir() string {
	ensureDefaultPaths()
	return defaultPaths.CacheDir
}

// LogFile lives in ~/.pmfzf, which is created with the paths.
func LogFile() string {
	ensureDefaultPaths()
	return defaultPaths.LogFile
}

// ResetPaths clears the cached paths, forcing them to be reinitialized.
// This is primarily used for testing purposes.
func ResetPaths() {
	defaultPaths = nil
}

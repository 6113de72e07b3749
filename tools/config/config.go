package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	DefaultConfigPath = "./configs/"
	DefaultEnvPath    = "./.env"
)

// LoadConf merges every file of configPath, then the environment and the
// optional env file at envPath, into the global viper instance.
func LoadConf(configPath, envPath string) error {
	setDefaults()
	if err := setDirConfig(configPath); err != nil {
		return err
	}
	return setEnvConfig(envPath)
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.path", "logs")
	viper.SetDefault("log.flag", "rsistrat")
	viper.SetDefault("log.suffix", "log")
	viper.SetDefault("log.save", 30)
	viper.SetDefault("storage.path", "rsistrat.db")
	viper.SetDefault("strategy.side", "long")
}

// setDirConfig reads the json, yaml or toml files in configPath in name order.
func setDirConfig(configPath string) error {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return err
	}
	exist, err := pathExists(absPath)
	if err != nil || !exist {
		return err
	}

	entries, err := os.ReadDir(absPath)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		viper.SetConfigFile(filepath.Join(absPath, entry.Name()))
		if err := viper.MergeInConfig(); err != nil {
			return err
		}
	}
	return nil
}

func setEnvConfig(envPath string) error {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if envPath == "" {
		return nil
	}
	absPath, err := filepath.Abs(envPath)
	if err != nil {
		return err
	}
	exist, err := pathExists(absPath)
	if err != nil || !exist {
		return err
	}

	envViper := viper.New()
	envViper.SetConfigFile(absPath)
	envViper.SetConfigType("env")
	if err := envViper.ReadInConfig(); err != nil {
		return err
	}
	// LOG_LEVEL becomes log.level, STRATEGY_RSI_LENGTH strategy.rsi_length
	for _, key := range envViper.AllKeys() {
		viper.Set(strings.Replace(key, "_", ".", 1), envViper.Get(key))
	}
	return nil
}

// ReloadConf rebuilds the global configuration from scratch, so keys removed
// from a file fall back to their defaults.
func ReloadConf(configPath, envPath string) error {
	viper.Reset()
	return LoadConf(configPath, envPath)
}

// WatchConfig reloads the whole configuration whenever a file of configPath or
// the env file changes, then calls onChange. It blocks until ctx is done.
// A reload that fails is logged and onChange is skipped.
func WatchConfig(ctx context.Context, logger *logrus.Logger, configPath, envPath string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	configDir, err := filepath.Abs(configPath)
	if err != nil {
		return err
	}
	if exist, err := pathExists(configDir); err != nil {
		return err
	} else if exist {
		if err := watcher.Add(configDir); err != nil {
			return err
		}
	}

	var envFile string
	if envPath != "" {
		if envFile, err = filepath.Abs(envPath); err != nil {
			return err
		}
		if exist, err := pathExists(envFile); err != nil {
			return err
		} else if exist && filepath.Dir(envFile) != configDir {
			if err := watcher.Add(filepath.Dir(envFile)); err != nil {
				return err
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !configEvent(event, configDir, envFile) {
				continue
			}
			logger.Infof("config file changed: %s", event.Name)
			if err := ReloadConf(configPath, envPath); err != nil {
				logger.Errorf("reload config: %v", err)
				continue
			}
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorf("config watcher: %v", err)
		}
	}
}

// configEvent keeps content changes of the config dir files and of the env
// file; the env file directory may hold unrelated files.
func configEvent(event fsnotify.Event, configDir, envFile string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Clean(event.Name)
	return filepath.Dir(name) == configDir || (envFile != "" && name == envFile)
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

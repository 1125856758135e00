package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// New snapshots the process environment into a map. When CONFIG_FILE points at a
// yaml/json/toml file, its keys are loaded first and environment variables override them.
func New() map[string]string {
	envAsMap := make(map[string]string)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		for key, value := range readFile(path) {
			envAsMap[key] = value
		}
	}

	for _, entry := range os.Environ() {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// readFile returns the flattened keys of a config file, upper-cased to match env names.
// An unreadable file yields an empty map so the environment still applies.
func readFile(path string) map[string]string {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil
	}

	values := make(map[string]string, len(v.AllKeys()))
	for _, key := range v.AllKeys() {
		name := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		values[name] = v.GetString(key)
	}
	return values
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok && val != "" {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}
	return asBool
}

// GetList splits a comma separated value, dropping blanks.
func GetList(config map[string]string, key string) []string {
	raw := GetString(config, key, "")
	if raw == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// IsDevelopment reports whether APP_ENV selects development mode.
func IsDevelopment(config map[string]string) bool {
	return strings.EqualFold(GetString(config, "APP_ENV", ""), "development")
}

package configuration

import (
	"fmt"
	"os"
	"strings"

	"overlayapi/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func parseArrayFields(k *koanf.Koanf) {
	for _, field := range ArrayConfigFields {
		if stringVal := k.String(field); stringVal != "" {
			stringVal = strings.Trim(stringVal, "[]")
			var items []string
			if strings.Contains(stringVal, ",") {
				items = strings.Split(stringVal, ",")
			} else {
				items = strings.Fields(stringVal)
			}
			for i, item := range items {
				items[i] = strings.TrimSpace(item)
			}
			err := k.Set(field, items)
			if err != nil {
				zap.L().
					Error("Error parsing array field", zap.String("field", field), zap.Error(err))
			}
		}
	}
}

func readEnvVars(k *koanf.Koanf) {
	err := k.Load(env.Provider("", ".", func(s string) string {
		s = strings.ToLower(s)
		segments := strings.Split(s, "__")
		return strings.Join(segments, ".")
	}), nil)
	if err != nil {
		zap.L().Warn("Error loading environment variables", zap.Error(err))
	}

	parseArrayFields(k)
}

func readFileConfig(k *koanf.Koanf) error {
	configFilePath := os.Getenv("CONFIG_FILE_PATH")
	var filePath string
	if configFilePath == "" {
		for _, path := range ConfigFileSearchPaths {
			if _, err := os.Stat(path); err == nil {
				filePath = path
				break
			}
		}
	} else {
		filePath = configFilePath
	}

	if filePath == "" {
		zap.L().Warn("No configuration file found")
		return nil
	}

	if err := k.Load(file.Provider(filePath), yaml.Parser()); err != nil {
		return fmt.Errorf("loading config file %s: %w", filePath, err)
	}
	zap.L().Info("Read configuration from file " + filePath)
	return nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]interface{}{
		"app.log_level":       "info",
		"app.port":            8080,
		"app.request_timeout": 10,
		"app.rate_limit":      0,
		"app.allowed_origins": []string{"*"},

		"store.type":    ProviderMongoDB,
		"store.timeout": 5,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

func setIfMissing(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		_ = k.Set(key, value)
	}
}

func loadConditionalDefaults(k *koanf.Koanf) {
	switch k.String("store.type") {
	case ProviderMongoDB:
		setIfMissing(k, "store.mongodb.database", "overlay")
		setIfMissing(k, "store.mongodb.collection", "records")
		setIfMissing(k, "store.mongodb.server_selection_timeout", 5)
	case ProviderPostgres, ProviderSQLite:
		setIfMissing(k, "store.sql.table", "records")
	}
	if k.Bool("tracing.enabled") {
		setIfMissing(k, "tracing.service_name", AppName)
	}
	if k.Bool("profiling.enabled") {
		setIfMissing(k, "profiling.application_name", AppName)
	}
}

// Load builds the configuration from defaults, the optional YAML file and the
// environment, then validates it.
func Load() (models.Configuration, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return models.Configuration{}, fmt.Errorf("loading defaults: %w", err)
	}
	if err := readFileConfig(k); err != nil {
		return models.Configuration{}, err
	}
	readEnvVars(k)
	loadConditionalDefaults(k)

	var config models.Configuration
	err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "mapstructure"})
	if err != nil {
		return models.Configuration{}, fmt.Errorf("decoding config: %w", err)
	}

	validate := validator.New()
	if err = validate.Struct(config); err != nil {
		return models.Configuration{}, fmt.Errorf("invalid configuration: %w", err)
	}

	// The store must give up before the request does, so the store error is the response.
	if config.App.RequestTimeout <= config.Store.Timeout {
		return models.Configuration{}, fmt.Errorf(
			"invalid configuration: app.request_timeout (%ds) must be greater than store.timeout (%ds)",
			config.App.RequestTimeout,
			config.Store.Timeout,
		)
	}

	return config, nil
}

// Read is Load for process startup: any configuration problem, including a missing
// admin secret or store connection string, is fatal.
func Read() models.Configuration {
	config, err := Load()
	if err != nil {
		zap.L().Fatal("Unable to load configuration", zap.Error(err))
	}
	return config
}

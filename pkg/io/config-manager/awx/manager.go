package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/devantler-tech/awxctl/pkg/apis/awx/v1alpha1"
	"github.com/devantler-tech/awxctl/pkg/utils/notify"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by the manager.
	EnvPrefix = "AWXCTL"
	// ConfigName is the config file name searched for without extension.
	ConfigName = "awxctl"
	// ConfigType is the config file format.
	ConfigType = "yaml"
)

// Flags bound to configuration keys when present on the flag set.
const (
	FlagVerbose     = "verbose"
	FlagWorkDir     = "work-dir"
	FlagClusterName = "cluster-name"
)

// ErrInvalidConfig is returned when the loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Silent suppresses loading notifications.
	Silent bool
	// SkipValidation returns the decoded config without validating it.
	SkipValidation bool
}

// ConfigManager loads a v1alpha1.Config through viper.
type ConfigManager struct {
	Viper           *viper.Viper
	Config          *v1alpha1.Config
	Writer          io.Writer
	configFile      string
	configLoaded    bool
	configFileFound bool
}

// NewConfigManager creates a manager. An empty configFile searches the working
// directory and $HOME/.config/awxctl for awxctl.yaml.
func NewConfigManager(writer io.Writer, configFile string) *ConfigManager {
	return &ConfigManager{
		Viper:      InitializeViper(configFile),
		Config:     v1alpha1.NewConfig(),
		Writer:     writer,
		configFile: configFile,
	}
}

// InitializeViper creates a viper instance with search paths, env handling and
// every default registered so nested keys resolve from the environment.
func InitializeViper(configFile string) *viper.Viper {
	viperInstance := viper.New()

	if configFile != "" {
		viperInstance.SetConfigFile(configFile)
	} else {
		viperInstance.SetConfigName(ConfigName)
		viperInstance.SetConfigType(ConfigType)
		viperInstance.AddConfigPath(".")
		viperInstance.AddConfigPath("$HOME/.config/awxctl")
	}

	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	for key, value := range defaultSettings() {
		viperInstance.SetDefault(key, value)
	}

	return viperInstance
}

// BindFlags binds the known flags of the set to their configuration keys.
// Flags missing from the set are skipped.
func (m *ConfigManager) BindFlags(flags *pflag.FlagSet) error {
	bindings := map[string]string{
		FlagVerbose:     "spec.verbose",
		FlagWorkDir:     "spec.workDir",
		FlagClusterName: "spec.cluster.name",
	}

	for flagName, key := range bindings {
		flag := flags.Lookup(flagName)
		if flag == nil {
			continue
		}

		err := m.Viper.BindPFlag(key, flag)
		if err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", flagName, err)
		}
	}

	return nil
}

// Load reads, decodes and validates the configuration once; later calls
// return the cached config.
func (m *ConfigManager) Load(opts LoadOptions) (*v1alpha1.Config, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	err := m.readConfig()
	if err != nil {
		return nil, err
	}

	config := v1alpha1.NewConfig()

	err = m.Viper.Unmarshal(config, decoderConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if !opts.SkipValidation {
		err = config.Validate()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if !opts.Silent {
		m.notifyLoaded()
	}

	m.Config = config
	m.configLoaded = true

	return m.Config, nil
}

// ConfigFileFound reports whether Load read a config file.
func (m *ConfigManager) ConfigFileFound() bool {
	return m.configFileFound
}

func (m *ConfigManager) readConfig() error {
	err := m.Viper.ReadInConfig()
	if err == nil {
		m.configFileFound = true

		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if m.configFile == "" && errors.As(err, &configFileNotFoundError) {
		m.configFileFound = false

		return nil
	}

	return fmt.Errorf("failed to read config file: %w", err)
}

func (m *ConfigManager) notifyLoaded() {
	if m.Writer == nil {
		return
	}

	if m.configFileFound {
		notify.Infof(m.Writer, "using config file %s", m.Viper.ConfigFileUsed())

		return
	}

	notify.Infof(m.Writer, "no config file found, using defaults")
}

func decoderConfig(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		enumDecodeHook(),
	)
}

// enumDecodeHook routes strings into pflag-style enum types through their Set
// method so casing is normalised and unknown values are rejected.
func enumDecodeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, target reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		raw, _ := data.(string)

		switch target {
		case reflect.TypeFor[v1alpha1.Protocol]():
			var protocol v1alpha1.Protocol

			err := protocol.Set(raw)
			if err != nil {
				return nil, fmt.Errorf("decode protocol: %w", err)
			}

			return protocol, nil
		case reflect.TypeFor[v1alpha1.ServiceType]():
			var serviceType v1alpha1.ServiceType

			err := serviceType.Set(raw)
			if err != nil {
				return nil, fmt.Errorf("decode service type: %w", err)
			}

			return serviceType, nil
		default:
			return data, nil
		}
	}
}

// defaultSettings flattens NewConfig into dotted viper keys.
func defaultSettings() map[string]any {
	nested := map[string]any{}

	err := mapstructure.Decode(v1alpha1.NewConfig(), &nested)
	if err != nil {
		return nil
	}

	flat := map[string]any{}
	flatten("", nested, flat)

	return flat
}

func flatten(prefix string, source map[string]any, target map[string]any) {
	for key, value := range source {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if child, ok := value.(map[string]any); ok {
			flatten(fullKey, child, target)

			continue
		}

		target[fullKey] = value
	}
}

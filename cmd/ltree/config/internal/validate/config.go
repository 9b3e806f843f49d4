package validate

import "time"

type valideConfig struct {
	Logger struct {
		Level    string `mapstructure:"level"`
		Encoding string `mapstructure:"encoding"`
	} `mapstructure:"logger"`

	Tree struct {
		Alphabet    string   `mapstructure:"alphabet"`
		LabelLength uint     `mapstructure:"label_length"`
		Ordering    []string `mapstructure:"ordering"`
		Compact     bool     `mapstructure:"compact"`
	} `mapstructure:"tree"`

	Store struct {
		Backend string `mapstructure:"backend"`
		Path    string `mapstructure:"path"`
		Bolt    struct {
			OpenTimeout time.Duration `mapstructure:"open_timeout"`
		} `mapstructure:"bolt"`
		Badger struct {
			SyncWrites bool `mapstructure:"sync_writes"`
		} `mapstructure:"badger"`
	} `mapstructure:"store"`
}

package config

// YAMLConfig mirrors nch.yaml. Pointers distinguish "absent" from zero values.
type YAMLConfig struct {
	NCH struct {
		Labels struct {
			IgnoreUnknown *bool `yaml:"ignore_unknown"`
		} `yaml:"labels"`

		Source struct {
			LabelsURL  string `yaml:"labels_url"`
			ClassesURL string `yaml:"classes_url"`
			Timeout    string `yaml:"timeout"`
			UserAgent  string `yaml:"user_agent"`
		} `yaml:"source"`

		Paths struct {
			CacheFile string `yaml:"cache_file"`
			LogsDir   string `yaml:"logs_dir"`
		} `yaml:"paths"`
	} `yaml:"nch"`
}

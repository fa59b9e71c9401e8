package config

type Config struct {
	Project   ProjectConfig   `yaml:"project"`
	Packager  PackagerConfig  `yaml:"packager"`
	Preflight PreflightConfig `yaml:"preflight"`
	UI        UIConfig        `yaml:"ui"`
	Update    UpdateConfig    `yaml:"update"`
}

type ProjectConfig struct {
	Name string `yaml:"name"`
	Root string `yaml:"root"`
}

type PackagerConfig struct {
	Command    string   `yaml:"command"`
	Args       []string `yaml:"args"`
	Port       int      `yaml:"port"`
	ResetCache *bool    `yaml:"reset_cache"`
	MaxWorkers int      `yaml:"max_workers"`
}

type PreflightConfig struct {
	Skip               *bool  `yaml:"skip"`
	MinWatchmanVersion string `yaml:"min_watchman_version"`
	MinInotifyWatches  int    `yaml:"min_inotify_watches"`
	MinMaxFiles        int    `yaml:"min_max_files"`
}

type UIConfig struct {
	Color         *bool `yaml:"color"`
	ProgressWidth int   `yaml:"progress_width"`
}

type UpdateConfig struct {
	Repo string `yaml:"repo"`
}

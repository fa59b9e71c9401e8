package config

func boolPtr(b bool) *bool { return &b }

func DefaultConfig() Config {
	return Config{
		Project: ProjectConfig{
			Root: ".",
		},
		Packager: PackagerConfig{
			Command:    "metro",
			Args:       []string{"start"},
			Port:       8081,
			ResetCache: boolPtr(false),
		},
		Preflight: PreflightConfig{
			Skip:               boolPtr(false),
			MinWatchmanVersion: "4.9.0",
			MinInotifyWatches:  8192,
			MinMaxFiles:        10240,
		},
		UI: UIConfig{
			Color:         boolPtr(true),
			ProgressWidth: 40,
		},
		Update: UpdateConfig{
			Repo: "halcyonlab/packmon",
		},
	}
}

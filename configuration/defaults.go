package configuration

func Default() Configuration {
	return Configuration{
		HttpAddr:          "127.0.0.1:3000",
		Dir:               "",
		Seed:              "",
		Snapshot:          "",
		EnableCompression: true,
		EnableMetrics:     true,
		Version:           false,
		ShowBanner:        true,
		ShowConfig:        false,
	}
}

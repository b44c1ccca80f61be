package configuration

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Dir               string `usage:"data directory, one command log per collection. Empty keeps everything in memory"`
	Seed              string `usage:"JSON, JSONC or YAML file with initial collections"`
	Snapshot          string `usage:"file where the whole database is written on shutdown"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`
	EnableMetrics     bool   `usage:"expose prometheus metrics at /_metrics"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
}

package log

// Options are the logging flags shared by every command.
type Options struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"AUTOREMAP_LOG_LEVEL"`
	File    string `help:"Also write logs to this file" env:"AUTOREMAP_LOG_FILE"`
	RawFile string `help:"Write a transcript of every external command to this file" env:"AUTOREMAP_LOG_RAW_FILE"`
}

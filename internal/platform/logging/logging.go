package logging

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

func New(level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	parsed := hclog.LevelFromString(level)
	if parsed == hclog.NoLevel {
		parsed = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "compass",
		Level:  parsed,
		Output: output,
	})
}

func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

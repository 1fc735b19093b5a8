package main

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func newLogger(c *cli.Context) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(c.String("log-level"))
	if err != nil {
		return nil, err
	}
	if c.Bool("verbose") {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	switch strings.ToLower(c.String("log-format")) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		return nil, cli.NewExitError("unknown log format "+c.String("log-format"), 1)
	}

	return logger, nil
}

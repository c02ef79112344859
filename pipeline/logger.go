package pipeline

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"tripfeat/domain/entities/dataset"
)

// InitLogger receives the log level to be set in logrus as a string. This
// method parses the string and sets the level on the logger. If the level
// string is not valid an error is returned.
func InitLogger(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	customFormatter := &log.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   false,
	}
	log.SetFormatter(customFormatter)
	log.SetLevel(level)
	return nil
}

func stageMessage(stage string, partition dataset.Partition, message string) string {
	return fmt.Sprintf("[stage: %s][partition: %s] %s", stage, partition, message)
}

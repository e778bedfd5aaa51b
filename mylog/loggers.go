// Copyright © 2019 Annchain Authors <EMAIL ADDRESS>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package mylog

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/annchain/tokengate/common/utilfuncs"
	rotatelogs "github.com/lestrrat/go-file-rotatelogs"
	"github.com/sirupsen/logrus"
)

// RotateLog opens a daily rotated file at abspath, keeping a week of history
// and a stable abspath.log link to the current file.
func RotateLog(abspath string) *rotatelogs.RotateLogs {
	logFile, err := rotatelogs.New(
		abspath+"%Y%m%d%H%M.log",
		rotatelogs.WithLinkName(abspath+".log"),
		rotatelogs.WithMaxAge(24*time.Hour*7),
		rotatelogs.WithRotationTime(time.Hour*24),
	)
	utilfuncs.PanicIfError(err, "err init log")
	return logFile
}

// InitLogger derives a logger from logger that also writes to a rotated
// outputFile under logdir. An empty logdir keeps the original output.
func InitLogger(logger *logrus.Logger, logdir string, outputFile string) *logrus.Logger {
	var writer io.Writer
	if logdir != "" {
		folderPath, err := filepath.Abs(logdir)
		utilfuncs.PanicIfError(err, fmt.Sprintf("Error on parsing log path: %s", logdir))

		abspath, err := filepath.Abs(path.Join(logdir, outputFile))
		utilfuncs.PanicIfError(err, fmt.Sprintf("Error on parsing log file path: %s", logdir))

		err = os.MkdirAll(folderPath, os.ModePerm)
		utilfuncs.PanicIfError(err, fmt.Sprintf("Error on creating log dir: %s", folderPath))

		logrus.WithField("path", abspath).Info("Additional logger")
		writer = io.MultiWriter(logger.Out, RotateLog(abspath))
	} else {
		writer = logger.Out
	}
	return &logrus.Logger{
		Level:        logger.Level,
		Formatter:    logger.Formatter,
		Out:          writer,
		Hooks:        make(logrus.LevelHooks),
		ExitFunc:     logger.ExitFunc,
		ReportCaller: logger.ReportCaller,
	}
}

// ParseLevel maps a config level name to a logrus level, falling back to info.
func ParseLevel(name string) logrus.Level {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		fmt.Println("Unknown level: ", name, "Set to INFO")
		return logrus.InfoLevel
	}
	return level
}

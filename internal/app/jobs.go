package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/feastlane/feastlane/internal/importer"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	// Recurring catalog re-import, disabled unless a schedule is configured.
	if spec := a.appConfig.Import.Schedule; spec != "" {
		_, err := a.sched.AddFunc(spec, func() {
			a.SchedImportTask()
		})
		if err != nil {
			zap.S().Errorf("init job error %s", err.Error())
		}
	}

	a.sched.Start()
}

// SchedImportTask re-imports the set menu document from the configured path
func (a *Application) SchedImportTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	result, err := importer.Import(a.gormDB, a.appConfig.Import.Path)
	if err != nil {
		zap.L().Error("scheduled import failed", zap.String("path", a.appConfig.Import.Path), zap.Error(err))
		return
	}
	zap.L().Info("scheduled import finished",
		zap.Int("imported", result.Imported),
		zap.Int("record_errors", len(result.Errors)))
}

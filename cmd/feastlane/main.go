package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/feastlane/feastlane/config"
	"github.com/feastlane/feastlane/internal/app"
	"github.com/feastlane/feastlane/internal/browse"
	"github.com/feastlane/feastlane/internal/importer"
	"github.com/feastlane/feastlane/internal/restapi"
	"github.com/feastlane/feastlane/internal/webserver"
)

var (
	confFile   = flag.String("conf", "/etc/feastlane.yml", "config file")
	initDb     = flag.Bool("initdb", false, "drop and recreate the schema")
	importFlag = flag.Bool("import", false, "import the set menu document and exit")
	importPath = flag.String("import-path", "", "override the configured import path")
	browseFlag = flag.Bool("browse", false, "browse a running catalog server")
	browseURL  = flag.String("url", "", "catalog server URL for -browse")
)

func main() {
	flag.Parse()
	cfg := config.LoadConfig(*confFile)

	if *browseFlag {
		url := *browseURL
		if url == "" {
			url = fmt.Sprintf("http://127.0.0.1:%d", cfg.Web.Port)
		}
		if err := browse.Run(context.Background(), url, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	if *importFlag {
		path := *importPath
		if path == "" {
			path = cfg.Import.Path
		}
		result, err := importer.Import(application.DB(), path)
		if err != nil {
			zap.L().Error("import failed", zap.Error(err))
			os.Exit(1)
		}
		zap.S().Infof("import completed: %d records imported, %d skipped",
			result.Imported, len(result.Errors))
		for _, recErr := range result.Errors {
			zap.S().Warnf("record %d: %v", recErr.Index, recErr.Err)
		}
		return
	}

	server := webserver.Init(application)
	restapi.RegisterRoutes()

	go func() {
		if err := server.Start(); err != nil {
			zap.L().Fatal("web server stopped", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	zap.S().Info("shutting down")
}

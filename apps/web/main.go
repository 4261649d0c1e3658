package main

import (
	stdlog "log"
	"os"

	echoweb "github.com/trezcool/darasa/apps/web/echo"
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/session"
	identitysvc "github.com/trezcool/darasa/services/identity"
	logsvc "github.com/trezcool/darasa/services/logger"
)

func main() {
	conf, err := core.NewConfig()
	if err != nil {
		stdlog.Fatal(err)
	}

	// set up services
	logger := logsvc.NewRollbarLogger(stdlog.New(os.Stdout, "WEB : ", stdlog.LstdFlags), conf)
	logger.Enable(!(conf.Debug || conf.TestMode))

	store := session.NewStore()
	sessSvc := session.NewService(store, identitysvc.NewJWTBackend(conf))

	// start the gateway
	app := echoweb.NewServer(
		&echoweb.Options{
			Addr:       conf.Server.Addr(),
			Conf:       conf,
			Logger:     logger,
			SessionSvc: sessSvc,
		},
	)
	app.Start()
}

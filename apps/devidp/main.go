package main

import (
	"log"
	"net"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/account"
	"github.com/trezcool/darasa/storage/database"
	sqlxrepos "github.com/trezcool/darasa/storage/database/sqlx"
)

func main() {
	conf, err := core.NewConfig()
	errAndDie(err)

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()

	// set up validation
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	// set up services
	acctSvc := account.NewService(sqlxrepos.NewAccountRepository(db))
	issuer := account.NewIssuer(conf)

	app := newServer(conf, acctSvc, issuer, validate, translator)
	app.start(idpAddr(conf))
}

func idpAddr(conf *core.Config) string {
	// default: ":9000"; override via <ENV>_AUTH_IDENTITYPROVIDERURL
	if u := conf.Auth.IdentityProviderURL; u != "" {
		if _, port, err := net.SplitHostPort(trimScheme(u)); err == nil {
			return ":" + port
		}
	}
	return ":9000"
}

func trimScheme(u string) string {
	for _, scheme := range []string{"https://", "http://"} {
		if len(u) > len(scheme) && u[:len(scheme)] == scheme {
			return u[len(scheme):]
		}
	}
	return u
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

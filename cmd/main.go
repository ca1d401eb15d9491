package main

import (
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/brasas-burger/zapbot/bot"
	"github.com/brasas-burger/zapbot/clients"
	"github.com/brasas-burger/zapbot/config"
	"github.com/brasas-burger/zapbot/database"
	"github.com/brasas-burger/zapbot/database/dbhelper"
	"github.com/brasas-burger/zapbot/nordeste"
	"github.com/brasas-burger/zapbot/server"
)

const shutdownTimeOut = 10 * time.Second

func main() {
	if err := config.Init(); err != nil {
		logrus.Panicf("invalid configuration: %v", err)
	}

	if err := database.ConnectAndMigrate(); err != nil {
		logrus.Panicf("failed to initialize database, error: %v", err)
	}
	logrus.Println("migration is successful")

	customers := dbhelper.Customers{}
	styler := nordeste.New(rand.New(rand.NewSource(time.Now().UnixNano())))

	orc := &bot.Orchestrator{
		Resolver:  &bot.Resolver{Customers: customers},
		Flow:      &bot.Flow{States: bot.NewMemRegistrationStore(), Customers: customers},
		Cart:      &bot.Engine{Catalog: dbhelper.Menu{}, Carts: dbhelper.Carts{}},
		Catalog:   dbhelper.Menu{},
		Messenger: clients.NewUltramsg(config.UltramsgBaseURL, config.UltramsgInstanceID, config.UltramsgToken),
		Responder: clients.NewGroq(config.GroqAPIKey, config.GroqModel, styler),
	}

	svr := server.SetupRoutes(orc)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logrus.Printf("listening on :%s", config.Port)
		if err := svr.Run(":" + config.Port); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server stopped")
			done <- syscall.SIGTERM
		}
	}()

	<-done
	logrus.Info("shutting down...")

	var result *multierror.Error
	if err := svr.Shutdown(shutdownTimeOut); err != nil {
		result = multierror.Append(result, err)
	}
	if err := database.ShutdownDatabase(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		logrus.WithError(err).Error("failed to shut down cleanly!")
	}

	logrus.Info("system is shut ..zzz")
}

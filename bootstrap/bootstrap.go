package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/fulldump/box"

	"github.com/fulldump/restdb/api"
	"github.com/fulldump/restdb/configuration"
	"github.com/fulldump/restdb/database"
	"github.com/fulldump/restdb/service"
)

var VERSION = "dev"

// Handler builds the HTTP surface for db with the interceptor chain used in
// production.
func Handler(c *configuration.Configuration, db *database.Database) http.Handler {

	b := api.Build(service.NewService(db), VERSION, c.EnableMetrics)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	if c.EnableMetrics {
		b.WithInterceptors(api.Metrics)
	}
	b.WithInterceptors(
		api.AccessLog(log.New(os.Stdout, "ACCESS: ", log.Lshortfile)),
		api.PrettyErrorInterceptor,
		api.RecoverFromPanic,
		api.InterceptorUnavailable(db),
	)

	return box.Box2Http(b)
}

func Bootstrap(c *configuration.Configuration) (start, stop func()) {

	db := database.NewDatabase(&database.Config{
		Dir:      c.Dir,
		Seed:     c.Seed,
		Snapshot: c.Snapshot,
	})

	s := &http.Server{
		Addr:    c.HttpAddr,
		Handler: Handler(c, db),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}
	log.Println("listening on", c.HttpAddr)

	stopOnce := &sync.Once{}
	stop = func() {
		stopOnce.Do(func() {
			err := db.Stop()
			if err != nil {
				log.Println("ERROR: stop database:", err.Error())
			}
			s.Shutdown(context.Background())
		})
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		for {
			sig := <-signalChan
			fmt.Println("Signal received", sig.String())
			stop()
		}
	}()

	start = func() {

		wg := &sync.WaitGroup{}

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Start()
			if err != nil {
				fmt.Println(err.Error())
			}
		}()

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Serve(ln)
			if err != nil && err != http.ErrServerClosed {
				fmt.Println(err.Error())
			}
		}()

		wg.Wait()
	}

	return
}

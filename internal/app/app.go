package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/avstrong/hostelscout/internal/booking"
	"github.com/avstrong/hostelscout/internal/config"
	"github.com/avstrong/hostelscout/internal/hostel"
	"github.com/avstrong/hostelscout/internal/idgen/refcode"
	"github.com/avstrong/hostelscout/internal/logger"
	"github.com/avstrong/hostelscout/internal/recommend"
	"github.com/avstrong/hostelscout/internal/storage/file"
	"github.com/avstrong/hostelscout/internal/storage/redis"
	"github.com/avstrong/hostelscout/internal/store"
	"github.com/avstrong/hostelscout/internal/transport/web"
)

func openKV(ctx context.Context, l *logger.Logger, conf *config.Config) (store.KV, func() error, error) {
	if conf.RedisAddr != "" {
		db, err := redis.New(ctx, redis.Config{
			L:        l,
			Addr:     conf.RedisAddr,
			Password: "",
			DB:       conf.RedisDB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("init redis backend: %w", err)
		}

		l.LogInfo("Using redis slot backend at %v", conf.RedisAddr)

		return db, db.Close, nil
	}

	db, err := file.New(file.Config{L: l, Dir: conf.StateDir})
	if err != nil {
		return nil, nil, fmt.Errorf("init file backend: %w", err)
	}

	l.LogInfo("Using file slot backend in %v", conf.StateDir)

	return db, func() error { return nil }, nil
}

//nolint:funlen
func Run(l *logger.Logger) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	conf := config.Load()

	kv, closeKV, err := openKV(ctx, l, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err := closeKV(); err != nil {
			l.LogErrorf("Failed to close slot backend: %v", err.Error())
		}
	}()

	st := store.New(store.Config{
		L:           l,
		KV:          kv,
		AmbientDark: conf.AmbientDark,
	})

	if err := st.Load(ctx); err != nil {
		return fmt.Errorf("load persisted state: %w", err)
	}

	l.LogInfo(
		"State loaded: %v favorite(s), %v booking(s), theme %v",
		len(st.Favorites()),
		len(st.Bookings()),
		st.Theme(),
	)

	catalog := hostel.Catalog()

	bookManager := booking.New(booking.Config{
		L:       l,
		Storage: st,
		RefGen:  refcode.New(),
		Catalog: catalog,
		Delay:   conf.ConfirmDelay,
		Now:     nil,
	})

	chat := recommend.New(recommend.Config{
		L:         l,
		Completer: recommend.NewOpenAI(conf.OpenAIKey),
		Catalog:   catalog,
		Model:     conf.OpenAIModel,
		Timeout:   conf.RecommendTimeout,
	})

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              conf.Host,
		Port:              conf.Port,
		ReadHeaderTimeout: conf.ReadHeaderTimeout,
		LivenessEndpoint:  "/liveness",
	}

	srv, err := web.New(ctx, webConf, catalog, st, bookManager, chat)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second*4) //nolint:gomnd
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	l.LogInfo("Application is running on %v:%v...", conf.Host, conf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		l.LogErrorf("Failed to run http server: %v", err.Error())

		cancel()
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}

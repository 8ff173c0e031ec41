package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/sw33tLie/platescope/internal/utils"
	"github.com/sw33tLie/platescope/pkg/ant"
	"github.com/sw33tLie/platescope/pkg/dedup"
	"github.com/sw33tLie/platescope/pkg/discovery"
	"github.com/sw33tLie/platescope/pkg/storage"
	"github.com/sw33tLie/platescope/pkg/whttp"
)

// session is everything one run needs: the locked dataset, the known plates
// and a discovery loop wired to the portal.
type session struct {
	runID string
	sink  storage.Sink
	lock  *utils.StoreLock
	loop  *discovery.Loop
}

func datasetConfig() (backend, path string) {
	backend = viper.GetString("storage.backend")
	path = viper.GetString("storage.path")
	if path == "" {
		path = storage.DefaultPath(backend)
	}
	return backend, path
}

func openSession(ctx context.Context) (*session, error) {
	backend, path := datasetConfig()

	lock, err := utils.NewStoreLock(path)
	if err != nil {
		return nil, err
	}
	if err := lock.Lock(); err != nil {
		return nil, err
	}

	s := &session{runID: uuid.NewString(), lock: lock}
	if err := s.init(ctx, backend, path); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) init(ctx context.Context, backend, path string) error {
	sink, err := storage.OpenSink(backend, path)
	if err != nil {
		return err
	}
	s.sink = sink
	if db, ok := sink.(*storage.DB); ok {
		db.SetRunID(s.runID)
	}

	known, err := dedup.Seed(ctx, sink)
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}

	httpClient, err := whttp.NewClient(whttp.ClientOptions{
		Timeout:  viper.GetDuration("lookup.timeout"),
		RetryMax: viper.GetInt("lookup.retries"),
		Proxy:    viper.GetString("proxy"),
	})
	if err != nil {
		return err
	}

	log := utils.Log.WithField("run", s.runID[:8])
	log.Debugf("Dataset %s (%s) holds %d plates", path, backend, known.Len())

	s.loop = discovery.New(ant.NewClient(httpClient, viper.GetString("lookup.url")), sink, known, discovery.Config{
		Delay:         viper.GetDuration("discovery.delay"),
		MaxVariations: viper.GetInt("discovery.maxvariations"),
		AttemptFactor: viper.GetInt("discovery.attemptfactor"),
		Log:           log,
		OnEvent:       printEvent,
	})
	return nil
}

func (s *session) Close() {
	if s.sink != nil {
		if err := s.sink.Close(); err != nil {
			utils.Log.Warnf("Could not close dataset: %v", err)
		}
	}
	if err := s.lock.Unlock(); err != nil {
		utils.Log.Warnf("%v", err)
	}
}

// finishRun prints the summary of a run. An exhausted attempt budget is
// reported, not treated as a command failure.
func finishRun(title string, summary discovery.Summary, err error) error {
	if errors.Is(err, discovery.ErrBudgetExhausted) {
		utils.Log.Warn("Too many failed attempts. Stopping...")
		printSummary(title, summary)
		return nil
	}
	if err != nil {
		var cfgErr *discovery.ConfigError
		if errors.As(err, &cfgErr) {
			return cfgErr
		}
		printSummary(title, summary)
		return err
	}
	printSummary(title, summary)
	return nil
}

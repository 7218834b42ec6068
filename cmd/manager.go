package cmd

import (
	"net/http"

	"github.com/kasuboski/arrqueue/config"
	"github.com/kasuboski/arrqueue/pkg/arr"
	mhttp "github.com/kasuboski/arrqueue/pkg/http"
	"github.com/kasuboski/arrqueue/pkg/manager"
	"github.com/spf13/viper"
)

// newQueueManager reads the configuration and wires a client for every instance
func newQueueManager() (config.Config, *manager.QueueManager, error) {
	cfg, err := config.New(viper.GetViper())
	if err != nil {
		return cfg, nil, err
	}

	httpClient := mhttp.NewRateLimitedHTTPClient(
		mhttp.WithMaxRetries(cfg.HTTP.MaxRetries),
		mhttp.WithBaseBackoff(cfg.HTTP.BaseBackoff),
		mhttp.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
	)

	clients := make([]arr.Client, 0, len(cfg.Instances))
	for _, instance := range cfg.Instances {
		c, err := arr.New(httpClient, instance)
		if err != nil {
			return cfg, nil, err
		}
		clients = append(clients, c)
	}

	return cfg, manager.New(arr.NewRouter(clients...), cfg.Manager), nil
}

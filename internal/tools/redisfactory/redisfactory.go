package redisfactory

import (
	"time"

	"github.com/redis/go-redis/v9"
)

type Factory struct {
	throttleClient *redis.Client
}

// New creates the redis clients. An empty URI leaves the client unset.
func New(throttleURI string) (*Factory, error) {
	factory := &Factory{}

	if throttleURI == "" {
		return factory, nil
	}

	opt, err := redis.ParseURL(throttleURI)
	if err != nil {
		return nil, err
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	factory.throttleClient = redis.NewClient(opt)

	return factory, nil
}

// ThrottleClient is nil unless a throttle URI was configured.
func (f *Factory) ThrottleClient() *redis.Client {
	return f.throttleClient
}

func (f *Factory) Close() error {
	if f.throttleClient == nil {
		return nil
	}

	return f.throttleClient.Close()
}

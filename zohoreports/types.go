package zohoreports

//go:generate mockgen -destination=../mocks/zohoreports/mock_request_doer.go -package=mock_zohoreports github.com/peppeocchi/zohoreports-sdk/zohoreports RequestDoer

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/afero"

	"github.com/rudderlabs/rudder-go-kit/logger"
	"github.com/rudderlabs/rudder-go-kit/stats"

	"github.com/peppeocchi/zohoreports-sdk/zohoreports/model"
)

type (
	Client struct {
		logger       logger.Logger
		statsFactory stats.Stats
		credentials  model.Credentials
		database     string
		endpoint     model.Endpoint
		fs           afero.Fs
		requestDoer  RequestDoer
		api          api

		config struct {
			client struct {
				timeout             time.Duration
				maxIdleConns        int
				maxIdleConnsPerHost int
				idleConnTimeout     time.Duration
			}
		}
	}

	// RequestDoer sends HTTP requests. *http.Client satisfies it.
	RequestDoer interface {
		Do(*http.Request) (*http.Response, error)
	}

	// Opt customizes a Client.
	Opt func(*Client)

	api interface {
		Send(ctx context.Context, req *model.ImportRequest) ([]byte, error)
	}
)

// WithRequestDoer replaces the default HTTP client.
func WithRequestDoer(requestDoer RequestDoer) Opt {
	return func(c *Client) {
		c.requestDoer = requestDoer
	}
}

// WithFs sets the filesystem files to import are read from.
func WithFs(fs afero.Fs) Opt {
	return func(c *Client) {
		c.fs = fs
	}
}

// Package zohoreports is a client for the Zoho Reports import API.
package zohoreports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/afero"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	"github.com/rudderlabs/rudder-go-kit/stats"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"

	"github.com/peppeocchi/zohoreports-sdk/utils/httputil"
	zohoapi "github.com/peppeocchi/zohoreports-sdk/zohoreports/internal/api"
	"github.com/peppeocchi/zohoreports-sdk/zohoreports/internal/builder"
	"github.com/peppeocchi/zohoreports-sdk/zohoreports/model"
)

const (
	importStatusSuccess = "success"
	importStatusInvalid = "invalid"
	importStatusFailed  = "failed"
)

// New returns a Client importing into database on behalf of creds.
func New(
	conf *config.Config,
	log logger.Logger,
	statsFactory stats.Stats,
	creds model.Credentials,
	database string,
	opts ...Opt,
) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if database == "" {
		return nil, &model.MissingParameterError{Parameter: "database", Reason: "database name is required"}
	}

	c := &Client{
		logger:       log.Child("zohoreports").Withn(logger.NewStringField("database", database)),
		statsFactory: statsFactory,
		credentials:  creds,
		database:     database,
		endpoint: model.Endpoint{
			BaseURL:      conf.GetString("ZohoReports.baseURL", model.DefaultBaseURL),
			OutputFormat: conf.GetString("ZohoReports.outputFormat", model.DefaultOutputFormat),
			ErrorFormat:  conf.GetString("ZohoReports.errorFormat", model.DefaultErrorFormat),
			APIVersion:   conf.GetString("ZohoReports.apiVersion", model.DefaultAPIVersion),
		},
	}
	c.config.client.timeout = conf.GetDuration("ZohoReports.Client.timeout", 300, time.Second)
	c.config.client.maxIdleConns = conf.GetInt("ZohoReports.Client.maxIdleConns", 10)
	c.config.client.maxIdleConnsPerHost = conf.GetInt("ZohoReports.Client.maxIdleConnsPerHost", 5)
	c.config.client.idleConnTimeout = conf.GetDuration("ZohoReports.Client.idleConnTimeout", 90, time.Second)

	for _, opt := range opts {
		opt(c)
	}
	if c.fs == nil {
		c.fs = afero.NewOsFs()
	}
	if c.requestDoer == nil {
		c.requestDoer = httputil.NewClient(httputil.ClientConfig{
			Timeout:             c.config.client.timeout,
			MaxIdleConns:        c.config.client.maxIdleConns,
			MaxIdleConnsPerHost: c.config.client.maxIdleConnsPerHost,
			IdleConnTimeout:     c.config.client.idleConnTimeout,
		})
	}
	c.api = zohoapi.New(c.requestDoer, c.fs)
	return c, nil
}

// Import uploads the file at filePath into table and returns the raw response body.
//
// Options are validated and the file is checked before anything is sent, so
// a *model.MissingParameterError, *model.InvalidParameterError or
// *model.FileNotFoundError means no request was made.
func (c *Client) Import(ctx context.Context, table, filePath string, opts model.ImportOptions) ([]byte, error) {
	tags := stats.Tags{
		"database": c.database,
		"table":    table,
	}
	log := c.logger.Withn(
		logger.NewStringField("table", table),
		logger.NewStringField("file", filePath),
	)

	req, err := builder.BuildImport(c.fs, c.endpoint, c.credentials, model.Target{Database: c.database, Table: table}, filePath, opts)
	if err != nil {
		c.countImport(tags, importStatusInvalid)
		log.Warnn("Invalid import request", obskit.Error(err))
		return nil, err
	}

	importType, _ := req.Field(model.FieldImportType)
	log.Infon("Importing file", logger.NewStringField("importType", importType))

	startTime := time.Now()
	body, err := c.api.Send(ctx, req)
	c.statsFactory.NewTaggedStat("zohoreports_import_time", stats.TimerType, tags).Since(startTime)
	if err != nil {
		c.countImport(tags, importStatusFailed)
		fields := []logger.Field{obskit.Error(err)}
		var statusErr *model.StatusError
		if errors.As(err, &statusErr) {
			fields = append(fields, logger.NewIntField("statusCode", int64(statusErr.StatusCode)))
		}
		log.Errorn("Import request failed", fields...)
		return nil, fmt.Errorf("importing %s into %s: %w", filePath, table, err)
	}

	c.countImport(tags, importStatusSuccess)
	log.Infon("Imported file", logger.NewIntField("responseSize", int64(len(body))))
	return body, nil
}

// ImportMap is like Import but takes the options as an untyped mapping, see model.ImportOptionsFromMap.
func (c *Client) ImportMap(ctx context.Context, table, filePath string, opts map[string]any) ([]byte, error) {
	importOpts, err := model.ImportOptionsFromMap(opts)
	if err != nil {
		c.countImport(stats.Tags{"database": c.database, "table": table}, importStatusInvalid)
		c.logger.Warnn("Invalid import options",
			logger.NewStringField("table", table),
			logger.NewStringField("file", filePath),
			obskit.Error(err),
		)
		return nil, err
	}
	return c.Import(ctx, table, filePath, importOpts)
}

func (c *Client) countImport(tags stats.Tags, status string) {
	c.statsFactory.NewTaggedStat("zohoreports_import_requests", stats.CountType, lo.Assign(tags, stats.Tags{
		"status": status,
	})).Increment()
}

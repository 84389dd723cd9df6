package commands

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	"github.com/rudderlabs/rudder-go-kit/stats"

	"github.com/peppeocchi/zohoreports-sdk/zohoreports"
	"github.com/peppeocchi/zohoreports-sdk/zohoreports/model"
)

// EnvPrefix is prepended to every configuration key looked up in the environment,
// e.g. ZOHOREPORTS_AUTH_TOKEN for authToken.
const EnvPrefix = "ZOHOREPORTS"

func init() {
	DefaultList = append(DefaultList, IMPORT())
}

// importOptionFlags maps option flags to the keys understood by model.ImportOptionsFromMap.
var importOptionFlags = map[string]string{
	"format":        model.OptionFormat,
	"create":        model.OptionCreate,
	"type":          model.OptionType,
	"primary-key":   model.OptionPrimaryKey,
	"date-format":   model.OptionDateFormat,
	"auto-identify": model.OptionAutoIdentify,
	"skip-rows":     model.OptionSkipRows,
	"comment-char":  model.OptionCommentChar,
	"delimiter":     model.OptionDelimiter,
	"quoted":        model.OptionQuoted,
	"on-error":      model.OptionOnError,
}

func IMPORT() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "import a CSV (or other tabular) file into a Zoho Reports table",
		ArgsUsage: "<file>",
		Action:    ImportRun,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Usage: "Zoho login email address (env " + EnvPrefix + "_EMAIL)"},
			&cli.StringFlag{Name: "token", Usage: "Zoho authtoken (env " + EnvPrefix + "_AUTH_TOKEN)"},
			&cli.StringFlag{Name: "database", Aliases: []string{"db"}, Usage: "database name (env " + EnvPrefix + "_DATABASE)"},
			&cli.StringFlag{Name: "table", Usage: "table name", Required: true},
			&cli.StringFlag{Name: "env-file", Usage: "load environment variables from this file"},
			&cli.BoolFlag{Name: "verbose", Usage: "log progress"},

			&cli.StringFlag{Name: "format", Usage: "file type", DefaultText: model.DefaultFormat},
			&cli.BoolFlag{Name: "create", Usage: "create the table if it does not exist", DefaultText: "true"},
			&cli.StringFlag{Name: "type", Usage: "TRUNCATEADD, UPDATEADD or APPEND", DefaultText: string(model.DefaultImportType)},
			&cli.StringFlag{Name: "primary-key", Usage: "matching columns, required for UPDATEADD"},
			&cli.StringFlag{Name: "date-format", Usage: "format of date columns", DefaultText: model.DefaultDateFormat},
			&cli.BoolFlag{Name: "auto-identify", Usage: "let the service detect the CSV dialect", DefaultText: "true"},
			&cli.IntFlag{Name: "skip-rows", Usage: "number of leading rows to skip", DefaultText: "0"},
			&cli.StringFlag{Name: "comment-char", Usage: "comment character, required with --auto-identify=false"},
			&cli.StringFlag{Name: "delimiter", Usage: "column delimiter, required with --auto-identify=false"},
			&cli.StringFlag{Name: "quoted", Usage: "text qualifier, required with --auto-identify=false"},
			&cli.StringFlag{Name: "on-error", Usage: "SETCOLUMNEMPTY, ABORT or SKIPROW", DefaultText: string(model.DefaultOnImportError)},
		},
	}
}

func ImportRun(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("expected exactly one file argument")
	}
	filePath := c.Args().First()

	if envFile := c.String("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
	}

	conf := config.New(config.WithEnvPrefix(EnvPrefix))
	if !c.Bool("verbose") {
		conf.Set("LOG_LEVEL", "ERROR")
	}
	logFactory := logger.NewFactory(conf)
	defer logFactory.Sync()

	email, _ := lo.Coalesce(c.String("email"), conf.GetString("email", ""))
	token, _ := lo.Coalesce(c.String("token"), conf.GetString("authToken", ""))
	database, _ := lo.Coalesce(c.String("database"), conf.GetString("database", ""))

	client, err := zohoreports.New(conf, logFactory.NewLogger(), stats.NOP, model.Credentials{
		Email:     email,
		AuthToken: token,
	}, database)
	if err != nil {
		return err
	}

	body, err := client.ImportMap(c.Context, c.String("table"), filePath, importOptions(c))
	if err != nil {
		return err
	}

	_, err = c.App.Writer.Write(body)
	return err
}

// importOptions returns the options given on the command line. Flags left unset are
// omitted so the defaults are applied in one place.
func importOptions(c *cli.Context) map[string]any {
	opts := make(map[string]any)
	for flag, key := range importOptionFlags {
		if !c.IsSet(flag) {
			continue
		}
		switch flag {
		case "create", "auto-identify":
			opts[key] = c.Bool(flag)
		case "skip-rows":
			opts[key] = c.Int(flag)
		default:
			opts[key] = c.String(flag)
		}
	}
	return opts
}

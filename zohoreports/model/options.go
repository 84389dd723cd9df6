package model

import (
	"errors"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Option keys accepted by ImportOptionsFromMap.
const (
	OptionFormat       = "format"
	OptionCreate       = "create"
	OptionType         = "type"
	OptionPrimaryKey   = "primaryKey"
	OptionDateFormat   = "dateFormat"
	OptionAutoIdentify = "autoIdentify"
	OptionSkipRows     = "skipRows"
	OptionCommentChar  = "commentChar"
	OptionDelimiter    = "delimiter"
	OptionQuoted       = "quoted"
	OptionOnError      = "onError"
)

// legacyOptionKeys maps the key names used by older integrations to the current ones.
var legacyOptionKeys = map[string]string{
	"pk":             OptionPrimaryKey,
	"skip":           OptionSkipRows,
	"csvCommentChar": OptionCommentChar,
	"csvDelimeter":   OptionDelimiter,
	"csvQuoted":      OptionQuoted,
}

var knownOptionKeys = []string{
	OptionFormat, OptionCreate, OptionType, OptionPrimaryKey, OptionDateFormat, OptionAutoIdentify,
	OptionSkipRows, OptionCommentChar, OptionDelimiter, OptionQuoted, OptionOnError,
}

// ImportOptionsFromMap decodes an untyped option mapping into ImportOptions.
//
// Booleans must be a bool or one of the strings accepted by strconv.ParseBool;
// any other value is rejected instead of being coerced. Enum values are
// case-insensitive. Keys that are not recognized are rejected. Legacy key
// names are accepted but lose to the current name when both are given.
func ImportOptionsFromMap(m map[string]any) (ImportOptions, error) {
	normalized := make(map[string]any, len(m))
	legacy := make(map[string]any)
	for k, v := range m {
		if alias, ok := legacyOptionKeys[k]; ok {
			if v != nil {
				legacy[alias] = v
			}
			continue
		}
		if !slices.Contains(knownOptionKeys, k) {
			return ImportOptions{}, &InvalidParameterError{Parameter: k, Value: v, Err: errors.New("unknown option")}
		}
		if v == nil {
			continue
		}
		normalized[k] = v
	}
	// a current key always takes precedence over its legacy alias
	for k, v := range legacy {
		if _, ok := normalized[k]; !ok {
			normalized[k] = v
		}
	}

	var (
		opts ImportOptions
		err  error
	)
	if opts.Format, err = stringOption(normalized, OptionFormat); err != nil {
		return ImportOptions{}, err
	}
	opts.Format = strings.ToUpper(opts.Format)
	if opts.CreateTable, err = boolOption(normalized, OptionCreate); err != nil {
		return ImportOptions{}, err
	}
	if v, ok := normalized[OptionType]; ok {
		s, err := cast.ToStringE(v)
		if err != nil {
			return ImportOptions{}, &InvalidParameterError{Parameter: OptionType, Value: v, Err: err}
		}
		if opts.ImportType, err = ParseImportType(s); err != nil {
			return ImportOptions{}, err
		}
	}
	if opts.PrimaryKey, err = stringOption(normalized, OptionPrimaryKey); err != nil {
		return ImportOptions{}, err
	}
	if opts.DateFormat, err = stringOption(normalized, OptionDateFormat); err != nil {
		return ImportOptions{}, err
	}
	if opts.AutoIdentify, err = boolOption(normalized, OptionAutoIdentify); err != nil {
		return ImportOptions{}, err
	}
	if v, ok := normalized[OptionSkipRows]; ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return ImportOptions{}, &InvalidParameterError{Parameter: OptionSkipRows, Value: v, Err: err}
		}
		if n < 0 {
			return ImportOptions{}, &InvalidParameterError{Parameter: OptionSkipRows, Value: v, Err: errors.New("must not be negative")}
		}
		opts.SkipRows = n
	}
	if opts.CommentChar, err = stringOption(normalized, OptionCommentChar); err != nil {
		return ImportOptions{}, err
	}
	if opts.Delimiter, err = stringOption(normalized, OptionDelimiter); err != nil {
		return ImportOptions{}, err
	}
	if opts.Quoted, err = stringOption(normalized, OptionQuoted); err != nil {
		return ImportOptions{}, err
	}
	if v, ok := normalized[OptionOnError]; ok {
		s, err := cast.ToStringE(v)
		if err != nil {
			return ImportOptions{}, &InvalidParameterError{Parameter: OptionOnError, Value: v, Err: err}
		}
		if opts.OnError, err = ParseOnImportError(s); err != nil {
			return ImportOptions{}, err
		}
	}
	return opts, nil
}

func stringOption(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", &InvalidParameterError{Parameter: key, Value: v, Err: err}
	}
	return s, nil
}

func boolOption(m map[string]any, key string) (*bool, error) {
	v, ok := m[key]
	if !ok {
		return nil, nil
	}
	switch v.(type) {
	case bool, string:
	default:
		return nil, &InvalidParameterError{Parameter: key, Value: v, Err: errors.New("expected a boolean")}
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return nil, &InvalidParameterError{Parameter: key, Value: v, Err: err}
	}
	return lo.ToPtr(b), nil
}

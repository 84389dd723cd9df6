package builder

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"

	"github.com/peppeocchi/zohoreports-sdk/zohoreports/model"
)

// BuildImport validates and defaults opts and assembles the import request for filePath.
// Nothing is sent; the only I/O is reading the metadata of filePath from fs.
func BuildImport(
	fs afero.Fs,
	endpoint model.Endpoint,
	creds model.Credentials,
	target model.Target,
	filePath string,
	opts model.ImportOptions,
) (*model.ImportRequest, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	fields, err := importFields(opts)
	if err != nil {
		return nil, err
	}

	absPath, err := resolveFile(fs, filePath)
	if err != nil {
		return nil, err
	}

	return &model.ImportRequest{
		URL:    actionURL(endpoint, creds, target, model.ActionImport),
		Fields: fields,
		File: model.FilePart{
			FieldName:   model.FieldFile,
			Path:        absPath,
			FileName:    filepath.Base(absPath),
			ContentType: model.FileContentType,
		},
	}, nil
}

func importFields(opts model.ImportOptions) ([]model.Field, error) {
	var fields []model.Field
	add := func(name, value string) {
		fields = append(fields, model.Field{Name: name, Value: value})
	}

	format := strings.ToUpper(lo.Ternary(opts.Format == "", model.DefaultFormat, opts.Format))
	add(model.FieldImportFileType, format)
	add(model.FieldCreateTable, strconv.FormatBool(lo.FromPtrOr(opts.CreateTable, model.DefaultCreateTable)))

	importType := model.DefaultImportType
	if opts.ImportType != "" {
		t, err := model.ParseImportType(string(opts.ImportType))
		if err != nil {
			return nil, err
		}
		importType = t
	}
	add(model.FieldImportType, string(importType))

	if importType == model.ImportTypeUpdateAdd {
		if opts.PrimaryKey == "" {
			return nil, &model.MissingParameterError{
				Parameter: model.OptionPrimaryKey,
				Reason:    "primary key required for " + string(model.ImportTypeUpdateAdd),
			}
		}
		add(model.FieldMatchingColumns, opts.PrimaryKey)
	}

	add(model.FieldDateFormat, lo.Ternary(opts.DateFormat == "", model.DefaultDateFormat, opts.DateFormat))

	if format == model.FormatCSV {
		autoIdentify := lo.FromPtrOr(opts.AutoIdentify, model.DefaultAutoIdentify)
		if opts.SkipRows < 0 {
			return nil, &model.InvalidParameterError{
				Parameter: model.OptionSkipRows,
				Value:     opts.SkipRows,
				Err:       errors.New("must not be negative"),
			}
		}
		add(model.FieldAutoIdentify, strconv.FormatBool(autoIdentify))
		add(model.FieldSkipTop, strconv.Itoa(opts.SkipRows))

		if !autoIdentify {
			dialect := []struct {
				option, field, value string
			}{
				{model.OptionCommentChar, model.FieldCommentChar, opts.CommentChar},
				{model.OptionDelimiter, model.FieldDelimiter, opts.Delimiter},
				{model.OptionQuoted, model.FieldQuoted, opts.Quoted},
			}
			for _, d := range dialect {
				if d.value == "" {
					return nil, &model.MissingParameterError{
						Parameter: d.option,
						Reason:    fmt.Sprintf("%s is required when autoIdentify is false", d.option),
					}
				}
			}
			for _, d := range dialect {
				add(d.field, d.value)
			}
		}
	}

	onError := model.DefaultOnImportError
	if opts.OnError != "" {
		o, err := model.ParseOnImportError(string(opts.OnError))
		if err != nil {
			return nil, err
		}
		onError = o
	}
	add(model.FieldOnImportError, string(onError))

	return fields, nil
}

// resolveFile returns the absolute path of filePath after making sure it is a readable regular file.
func resolveFile(fs afero.Fs, filePath string) (string, error) {
	if filePath == "" {
		return "", &model.FileNotFoundError{Path: filePath}
	}
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", &model.FileNotFoundError{Path: filePath, Err: err}
	}

	info, err := fs.Stat(absPath)
	if err != nil {
		return "", &model.FileNotFoundError{Path: filePath, Err: err}
	}
	if info.IsDir() {
		return "", &model.FileNotFoundError{Path: filePath, Err: errors.New("path is a directory")}
	}

	f, err := fs.Open(absPath)
	if err != nil {
		return "", &model.FileNotFoundError{Path: filePath, Err: err}
	}
	_ = f.Close()

	return absPath, nil
}

// actionURL builds the request URL for action. Query parameters keep the order the service documents.
func actionURL(endpoint model.Endpoint, creds model.Credentials, target model.Target, action model.Action) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(endpoint.BaseURL, "/"))
	for _, segment := range []string{creds.Email, target.Database, target.Table} {
		sb.WriteString("/")
		sb.WriteString(url.PathEscape(segment))
	}
	params := []struct{ key, value string }{
		{"ZOHO_ACTION", string(action)},
		{"ZOHO_OUTPUT_FORMAT", endpoint.OutputFormat},
		{"ZOHO_ERROR_FORMAT", endpoint.ErrorFormat},
		{"ZOHO_API_VERSION", endpoint.APIVersion},
		{model.QueryAuthToken, creds.AuthToken},
	}
	for i, p := range params {
		sb.WriteString(lo.Ternary(i == 0, "?", "&"))
		sb.WriteString(p.key)
		sb.WriteString("=")
		sb.WriteString(url.QueryEscape(p.value))
	}
	return sb.String()
}

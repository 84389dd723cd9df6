package builder_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/peppeocchi/zohoreports-sdk/zohoreports/internal/builder"
	"github.com/peppeocchi/zohoreports-sdk/zohoreports/model"
)

var (
	creds  = model.Credentials{Email: "a@b.com", AuthToken: "T"}
	target = model.Target{Database: "DB", Table: "Tbl"}
)

func newFs(t *testing.T, paths ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		require.NoError(t, err)
		require.NoError(t, afero.WriteFile(fs, abs, []byte("id,name\n1,foo\n"), 0o644))
	}
	return fs
}

func fieldNames(req *model.ImportRequest) []string {
	return lo.Map(req.Fields, func(f model.Field, _ int) string { return f.Name })
}

func TestBuildImport(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fs := newFs(t, "data.csv")

		req, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "data.csv", model.ImportOptions{})
		require.NoError(t, err)

		require.Equal(t, "https://reportsapi.zoho.com/api/a@b.com/DB/Tbl?ZOHO_ACTION=IMPORT&ZOHO_OUTPUT_FORMAT=JSON&ZOHO_ERROR_FORMAT=JSON&ZOHO_API_VERSION=1.0&authtoken=T", req.URL)
		require.Equal(t, []model.Field{
			{Name: "ZOHO_IMPORT_FILETYPE", Value: "CSV"},
			{Name: "ZOHO_CREATE_TABLE", Value: "true"},
			{Name: "ZOHO_IMPORT_TYPE", Value: "TRUNCATEADD"},
			{Name: "ZOHO_DATE_FORMAT", Value: "yyyy-MM-dd HH:mm:ss"},
			{Name: "ZOHO_AUTO_IDENTIFY", Value: "true"},
			{Name: "ZOHO_SKIPTOP", Value: "0"},
			{Name: "ZOHO_ON_IMPORT_ERROR", Value: "SETCOLUMNEMPTY"},
		}, req.Fields)

		abs, err := filepath.Abs("data.csv")
		require.NoError(t, err)
		require.Equal(t, model.FilePart{
			FieldName:   "ZOHO_FILE",
			Path:        abs,
			FileName:    "data.csv",
			ContentType: "text/csv",
		}, req.File)
	})

	t.Run("omitted type emits no matching columns", func(t *testing.T) {
		fs := newFs(t, "data.csv")

		req, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "data.csv", model.ImportOptions{PrimaryKey: "id"})
		require.NoError(t, err)

		importType, ok := req.Field(model.FieldImportType)
		require.True(t, ok)
		require.Equal(t, "TRUNCATEADD", importType)
		require.NotContains(t, fieldNames(req), model.FieldMatchingColumns)
	})

	t.Run("updateadd", func(t *testing.T) {
		fs := newFs(t, "data.csv")

		_, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "data.csv", model.ImportOptions{ImportType: model.ImportTypeUpdateAdd})
		var missing *model.MissingParameterError
		require.ErrorAs(t, err, &missing)
		require.Equal(t, model.OptionPrimaryKey, missing.Parameter)
		require.ErrorIs(t, err, model.ErrMissingParameter)

		req, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "data.csv", model.ImportOptions{ImportType: "updateadd", PrimaryKey: "id"})
		require.NoError(t, err)
		matching, ok := req.Field(model.FieldMatchingColumns)
		require.True(t, ok)
		require.Equal(t, "id", matching)
		importType, _ := req.Field(model.FieldImportType)
		require.Equal(t, "UPDATEADD", importType)
	})

	t.Run("csv dialect required without auto identify", func(t *testing.T) {
		fs := newFs(t, "data.csv")

		testCases := []struct {
			name            string
			opts            model.ImportOptions
			wantMissingName string
		}{
			{
				name:            "all missing",
				opts:            model.ImportOptions{AutoIdentify: lo.ToPtr(false)},
				wantMissingName: model.OptionCommentChar,
			},
			{
				name:            "delimiter missing",
				opts:            model.ImportOptions{AutoIdentify: lo.ToPtr(false), CommentChar: "#", Quoted: "DOUBLE"},
				wantMissingName: model.OptionDelimiter,
			},
			{
				name:            "quoted missing",
				opts:            model.ImportOptions{AutoIdentify: lo.ToPtr(false), CommentChar: "#", Delimiter: "COMMA"},
				wantMissingName: model.OptionQuoted,
			},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "data.csv", tc.opts)
				var missing *model.MissingParameterError
				require.ErrorAs(t, err, &missing)
				require.Equal(t, tc.wantMissingName, missing.Parameter)
			})
		}

		req, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "data.csv", model.ImportOptions{
			AutoIdentify: lo.ToPtr(false),
			SkipRows:     2,
			CommentChar:  "#",
			Delimiter:    "TAB",
			Quoted:       "DOUBLE",
		})
		require.NoError(t, err)
		require.Equal(t, []string{
			"ZOHO_IMPORT_FILETYPE",
			"ZOHO_CREATE_TABLE",
			"ZOHO_IMPORT_TYPE",
			"ZOHO_DATE_FORMAT",
			"ZOHO_AUTO_IDENTIFY",
			"ZOHO_SKIPTOP",
			"ZOHO_COMMENTCHAR",
			"ZOHO_DELIMITER",
			"ZOHO_QUOTED",
			"ZOHO_ON_IMPORT_ERROR",
		}, fieldNames(req))
		for name, want := range map[string]string{
			model.FieldAutoIdentify: "false",
			model.FieldSkipTop:      "2",
			model.FieldCommentChar:  "#",
			model.FieldDelimiter:    "TAB",
			model.FieldQuoted:       "DOUBLE",
		} {
			got, ok := req.Field(name)
			require.True(t, ok, name)
			require.Equal(t, want, got, name)
		}
	})

	t.Run("non csv formats skip csv fields", func(t *testing.T) {
		fs := newFs(t, "data.json")

		req, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "data.json", model.ImportOptions{
			Format:       "json",
			AutoIdentify: lo.ToPtr(false),
			SkipRows:     3,
		})
		require.NoError(t, err)

		format, _ := req.Field(model.FieldImportFileType)
		require.Equal(t, "JSON", format)
		names := fieldNames(req)
		require.NotContains(t, names, model.FieldAutoIdentify)
		require.NotContains(t, names, model.FieldSkipTop)
		require.NotContains(t, names, model.FieldCommentChar)
		require.NotContains(t, names, model.FieldDelimiter)
		require.NotContains(t, names, model.FieldQuoted)
	})

	t.Run("explicit values", func(t *testing.T) {
		fs := newFs(t, "data.csv")

		req, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "data.csv", model.ImportOptions{
			CreateTable: lo.ToPtr(false),
			ImportType:  model.ImportTypeAppend,
			DateFormat:  "dd/MM/yyyy",
			OnError:     "skiprow",
		})
		require.NoError(t, err)

		for name, want := range map[string]string{
			model.FieldCreateTable:   "false",
			model.FieldImportType:    "APPEND",
			model.FieldDateFormat:    "dd/MM/yyyy",
			model.FieldOnImportError: "SKIPROW",
		} {
			got, _ := req.Field(name)
			require.Equal(t, want, got, name)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		fs := newFs(t, "data.csv")

		testCases := []struct {
			name      string
			opts      model.ImportOptions
			parameter string
		}{
			{name: "type", opts: model.ImportOptions{ImportType: "REPLACE"}, parameter: "type"},
			{name: "on error", opts: model.ImportOptions{OnError: "IGNORE"}, parameter: "onError"},
			{name: "skip rows", opts: model.ImportOptions{SkipRows: -1}, parameter: "skipRows"},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "data.csv", tc.opts)
				var invalid *model.InvalidParameterError
				require.ErrorAs(t, err, &invalid)
				require.Equal(t, tc.parameter, invalid.Parameter)
				require.ErrorIs(t, err, model.ErrInvalidParameter)
			})
		}
	})

	t.Run("file not found", func(t *testing.T) {
		fs := newFs(t, "data.csv")

		_, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "missing.csv", model.ImportOptions{})
		var notFound *model.FileNotFoundError
		require.ErrorAs(t, err, &notFound)
		require.Equal(t, "missing.csv", notFound.Path)
		require.ErrorIs(t, err, model.ErrFileNotFound)

		_, err = builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "", model.ImportOptions{})
		require.ErrorIs(t, err, model.ErrFileNotFound)
	})

	t.Run("directory is not a file", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, fs.MkdirAll("/data/dir", 0o755))

		_, err := builder.BuildImport(fs, model.DefaultEndpoint(), creds, target, "/data/dir", model.ImportOptions{})
		require.ErrorIs(t, err, model.ErrFileNotFound)
	})

	t.Run("option errors win over missing file", func(t *testing.T) {
		_, err := builder.BuildImport(afero.NewMemMapFs(), model.DefaultEndpoint(), creds, target, "missing.csv", model.ImportOptions{ImportType: model.ImportTypeUpdateAdd})
		require.ErrorIs(t, err, model.ErrMissingParameter)
		require.False(t, errors.Is(err, model.ErrFileNotFound))
	})

	t.Run("missing credentials and target", func(t *testing.T) {
		fs := newFs(t, "data.csv")

		_, err := builder.BuildImport(fs, model.DefaultEndpoint(), model.Credentials{Email: "a@b.com"}, target, "data.csv", model.ImportOptions{})
		require.ErrorIs(t, err, model.ErrMissingParameter)

		_, err = builder.BuildImport(fs, model.DefaultEndpoint(), creds, model.Target{Database: "DB"}, "data.csv", model.ImportOptions{})
		require.ErrorIs(t, err, model.ErrMissingParameter)
	})

	t.Run("url escaping and custom endpoint", func(t *testing.T) {
		fs := newFs(t, "data.csv")

		endpoint := model.Endpoint{
			BaseURL:      "http://localhost:8080/api",
			OutputFormat: "XML",
			ErrorFormat:  "XML",
			APIVersion:   "1.0",
		}
		req, err := builder.BuildImport(fs, endpoint, model.Credentials{Email: "a@b.com", AuthToken: "t&k"}, model.Target{Database: "My DB", Table: "My-Table"}, "data.csv", model.ImportOptions{})
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8080/api/a@b.com/My%20DB/My-Table?ZOHO_ACTION=IMPORT&ZOHO_OUTPUT_FORMAT=XML&ZOHO_ERROR_FORMAT=XML&ZOHO_API_VERSION=1.0&authtoken=t%26k", req.URL)
	})
}

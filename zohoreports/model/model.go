package model

import (
	"fmt"
	"strings"
)

type (
	// Action is the value of the ZOHO_ACTION query parameter.
	Action string

	ImportType    string
	OnImportError string
)

const (
	ActionAddRow           Action = "ADDROW"
	ActionImport           Action = "IMPORT"
	ActionUpdate           Action = "UPDATE"
	ActionDelete           Action = "DELETE"
	ActionExport           Action = "EXPORT"
	ActionDatabaseMetadata Action = "DATABASEMETADATA"
)

const (
	ImportTypeTruncateAdd ImportType = "TRUNCATEADD"
	ImportTypeUpdateAdd   ImportType = "UPDATEADD"
	ImportTypeAppend      ImportType = "APPEND"
)

const (
	OnImportErrorSetColumnEmpty OnImportError = "SETCOLUMNEMPTY"
	OnImportErrorAbort          OnImportError = "ABORT"
	OnImportErrorSkipRow        OnImportError = "SKIPROW"
)

const (
	FormatCSV = "CSV"

	DefaultFormat        = FormatCSV
	DefaultImportType    = ImportTypeTruncateAdd
	DefaultDateFormat    = "yyyy-MM-dd HH:mm:ss"
	DefaultOnImportError = OnImportErrorSetColumnEmpty
	DefaultCreateTable   = true
	DefaultAutoIdentify  = true

	DefaultBaseURL      = "https://reportsapi.zoho.com/api/"
	DefaultOutputFormat = "JSON"
	DefaultErrorFormat  = "JSON"
	DefaultAPIVersion   = "1.0"
)

// Form field names expected by the import API.
const (
	FieldImportFileType  = "ZOHO_IMPORT_FILETYPE"
	FieldCreateTable     = "ZOHO_CREATE_TABLE"
	FieldImportType      = "ZOHO_IMPORT_TYPE"
	FieldMatchingColumns = "ZOHO_MATCHING_COLUMNS"
	FieldDateFormat      = "ZOHO_DATE_FORMAT"
	FieldAutoIdentify    = "ZOHO_AUTO_IDENTIFY"
	FieldSkipTop         = "ZOHO_SKIPTOP"
	FieldCommentChar     = "ZOHO_COMMENTCHAR"
	FieldDelimiter       = "ZOHO_DELIMITER"
	FieldQuoted          = "ZOHO_QUOTED"
	FieldOnImportError   = "ZOHO_ON_IMPORT_ERROR"
	FieldFile            = "ZOHO_FILE"

	FileContentType = "text/csv"

	// QueryAuthToken is the query parameter carrying Credentials.AuthToken.
	QueryAuthToken = "authtoken"
)

// Credentials identify the account every request is made on behalf of.
type Credentials struct {
	Email     string
	AuthToken string
}

func (c Credentials) Validate() error {
	if c.Email == "" {
		return &MissingParameterError{Parameter: "email", Reason: "login email is required"}
	}
	if c.AuthToken == "" {
		return &MissingParameterError{Parameter: "authtoken", Reason: "authtoken is required"}
	}
	return nil
}

// Target is the database and table an import writes into.
type Target struct {
	Database string
	Table    string
}

func (t Target) Validate() error {
	if t.Database == "" {
		return &MissingParameterError{Parameter: "database", Reason: "database name is required"}
	}
	if t.Table == "" {
		return &MissingParameterError{Parameter: "table", Reason: "table name is required"}
	}
	return nil
}

// Endpoint describes the fixed parts of every request URL.
type Endpoint struct {
	BaseURL      string
	OutputFormat string
	ErrorFormat  string
	APIVersion   string
}

func DefaultEndpoint() Endpoint {
	return Endpoint{
		BaseURL:      DefaultBaseURL,
		OutputFormat: DefaultOutputFormat,
		ErrorFormat:  DefaultErrorFormat,
		APIVersion:   DefaultAPIVersion,
	}
}

// ImportOptions controls how the remote service loads the uploaded file.
// Zero values resolve to the documented defaults.
type ImportOptions struct {
	Format       string
	CreateTable  *bool
	ImportType   ImportType
	PrimaryKey   string
	DateFormat   string
	AutoIdentify *bool
	SkipRows     int
	CommentChar  string
	Delimiter    string
	Quoted       string
	OnError      OnImportError
}

// Field is a single form field of the multipart body.
type Field struct {
	Name  string
	Value string
}

// FilePart describes the file attached to the multipart body.
type FilePart struct {
	FieldName   string
	Path        string
	FileName    string
	ContentType string
}

// ImportRequest is a fully resolved, ready to send import call.
type ImportRequest struct {
	URL    string
	Fields []Field
	File   FilePart
}

// Field returns the value of the named form field.
func (r *ImportRequest) Field(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func ParseImportType(s string) (ImportType, error) {
	switch t := ImportType(strings.ToUpper(strings.TrimSpace(s))); t {
	case ImportTypeTruncateAdd, ImportTypeUpdateAdd, ImportTypeAppend:
		return t, nil
	default:
		return "", &InvalidParameterError{
			Parameter: "type",
			Value:     s,
			Err:       fmt.Errorf("must be one of %s, %s, %s", ImportTypeTruncateAdd, ImportTypeUpdateAdd, ImportTypeAppend),
		}
	}
}

func ParseOnImportError(s string) (OnImportError, error) {
	switch o := OnImportError(strings.ToUpper(strings.TrimSpace(s))); o {
	case OnImportErrorSetColumnEmpty, OnImportErrorAbort, OnImportErrorSkipRow:
		return o, nil
	default:
		return "", &InvalidParameterError{
			Parameter: "onError",
			Value:     s,
			Err:       fmt.Errorf("must be one of %s, %s, %s", OnImportErrorSetColumnEmpty, OnImportErrorAbort, OnImportErrorSkipRow),
		}
	}
}

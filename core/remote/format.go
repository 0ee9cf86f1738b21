package remote

import (
	"path"
	"strings"
)

// Format is a spreadsheet container format.
type Format string

const (
	FormatUnknown Format = ""
	FormatXLSX    Format = "xlsx"
	FormatXLS     Format = "xls"
	FormatCSV     Format = "csv"
)

const (
	MimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeXLS         = "application/vnd.ms-excel"
	MimeCSV         = "text/csv"
	MimeGoogleSheet = "application/vnd.google-apps.spreadsheet"
)

// FormatOf infers the spreadsheet format from a content type, falling back to the
// file extension when the content type is generic or missing.
// Native Google Sheets count as XLSX because the Drive provider exports them that way.
func FormatOf(name, contentType string) Format {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	switch ct {
	case MimeXLSX, MimeGoogleSheet:
		return FormatXLSX
	case MimeXLS:
		return FormatXLS
	case MimeCSV, "application/csv", "text/comma-separated-values":
		return FormatCSV
	}

	switch strings.ToLower(path.Ext(name)) {
	case ".xlsx":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	case ".csv":
		return FormatCSV
	}
	return FormatUnknown
}

// IsSpreadsheet reports whether a listed file looks like something we can parse.
func (f FileInfo) IsSpreadsheet() bool {
	return FormatOf(f.Name, f.MimeType) != FormatUnknown
}

package domain

import "errors"

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrSchemaNotFound    = errors.New("schema not found")
	ErrMissingInput      = errors.New("document has no raw text")
	ErrOracleFailure     = errors.New("field extraction failed")
	ErrMalformedResponse = errors.New("extraction response had no parseable payload")
	ErrSinkWrite         = errors.New("output sink write failed")
	ErrBatchNotFound     = errors.New("no output files exist for batch")

	ErrUnsupportedFileType = errors.New("unsupported scan file type")
)

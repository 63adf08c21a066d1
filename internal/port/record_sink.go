package port

// RecordSink appends formatted records to batch-scoped output files.
// Implementations guarantee the file's first line is the header after any
// successful write.
type RecordSink interface {
	Write(batch, suffix, header, record string) error
}

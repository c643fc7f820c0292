package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldSource      = "source"
	FieldParser      = "parser"
	FieldVendor      = "vendor"
	FieldRule        = "rule"
	FieldLine        = "line"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldDelimiter   = "delimiter"
	FieldInputDir    = "input_dir"
	FieldPattern     = "pattern"
	FieldOutputFile  = "output_file"
	FieldRunID       = "run_id"
	FieldWorkers     = "workers"
	FieldDescription = "description"
)

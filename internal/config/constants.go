package config

// Application constants
const (
	AppName = "payroll-etl"

	// EnvPrefix namespaces every environment variable, e.g. ETL_PATHS_INPUT_FOLDER.
	EnvPrefix = "ETL"

	// Default folders, relative to the working directory
	DefaultInputFolder  = "data/input"
	DefaultOutputFolder = "data/output"
	DefaultLogFile      = "logs/etl.log"

	// ResultFileName is the single file every run produces in the output folder.
	ResultFileName = "RESULT.csv"

	// Directory and file permissions
	DirPermission  = 0755
	FilePermission = 0644
)

// Package config loads the ETL configuration.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//	1. Default values
//	2. A YAML file (-config flag, else config.yaml or configs/config.yaml)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables use the ETL_ prefix followed by the section name:
//
//	ETL_PATHS_INPUT_FOLDER=/srv/payroll/in
//	ETL_PATHS_OUTPUT_FOLDER=/srv/payroll/out
//	ETL_PROCESSING_WORKERS=4
//	ETL_LOGGING_LEVEL=debug
//	ETL_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/payroll.prom
//
// # Validation
//
// The merged configuration is validated with struct tags before use. Both
// folder paths are required; the output folder does not have to exist.
package config

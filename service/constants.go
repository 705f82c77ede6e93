package service

const (
	// DiagnosticUnreachable is shown whenever a recommendation request falls
	// back to synthetic results.
	DiagnosticUnreachable = "Unable to connect to the recommendation service. Please ensure the backend API is running."

	// DiagnosticFiltersUnavailable is recorded when the filter facets cannot
	// be loaded.
	DiagnosticFiltersUnavailable = "Unable to connect to the backend API."

	// MissingDistanceKm orders records without a distance after every record
	// that has one.
	MissingDistanceKm = 999999.0

	ExportFilename    = "college_recommendations.csv"
	ExportContentType = "text/csv"

	// Synthetic fixtures never open below this rank.
	syntheticMinOpeningRank = 1000
	syntheticCutoffYear     = "2023"

	filtersEndpoint   = "/filters"
	recommendEndpoint = "/predict-colleges"
)

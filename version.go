package shorten

// Version the application version.
var (
	Version   = "1.0.0"
	CommitSHA = "devel"
)

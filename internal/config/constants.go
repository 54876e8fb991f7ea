package config

// Default endpoints and paths
const (
	// DefaultAPIBaseURL is the local development address of the library API
	DefaultAPIBaseURL = "http://localhost:8000/api"

	// DefaultStatePath is the default path for the client state database
	DefaultStatePath = "./shelfmate.db"
)

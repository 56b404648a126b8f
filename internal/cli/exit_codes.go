package cli

// Exit codes for the newsgen CLI
// These codes support programmatic composition and CI/CD integration
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a fatal runtime error
	ExitFailure = 1

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 2

	// ExitPreconditionFailed indicates a missing prerequisite
	// (for example, fewer than two releases in the news directory)
	ExitPreconditionFailed = 3
)

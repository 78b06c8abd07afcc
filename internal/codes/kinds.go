package codes

// ErrorKind classifies a pipeline failure or warning
type ErrorKind string

const (
	None                ErrorKind = ""
	MissingCompiler     ErrorKind = "MissingCompiler"
	MissingTemplate     ErrorKind = "MissingTemplate"
	MissingIconPath     ErrorKind = "MissingIconPath"
	MissingLicensePath  ErrorKind = "MissingLicensePath"
	NativeBuildFailed   ErrorKind = "NativeBuildFailed"
	RenderFailed        ErrorKind = "RenderFailed"
	ProcessLaunchFailed ErrorKind = "ProcessLaunchFailed"

	// OutputFolderMissing is reported as a warning and never fails a run
	OutputFolderMissing ErrorKind = "OutputFolderMissing"
)

// Process exit codes returned by the issbuild CLI
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitConfigError  = 2
	ExitBuildError   = 3
	ExitCompileError = 4
)

// IsValidation reports whether the kind is produced by configuration validation
func (k ErrorKind) IsValidation() bool {
	switch k {
	case MissingCompiler, MissingTemplate, MissingIconPath, MissingLicensePath:
		return true
	}

	return false
}

// IsFatal reports whether the kind aborts a pipeline run
func (k ErrorKind) IsFatal() bool {
	return k != None && k != OutputFolderMissing
}

// ExitCode maps a kind to the CLI process exit code
func (k ErrorKind) ExitCode() int {
	switch {
	case k == None, k == OutputFolderMissing:
		return ExitSuccess
	case k.IsValidation():
		return ExitConfigError
	case k == NativeBuildFailed, k == RenderFailed:
		return ExitBuildError
	case k == ProcessLaunchFailed:
		return ExitCompileError
	}

	return ExitFailure
}

func (k ErrorKind) String() string {
	return string(k)
}

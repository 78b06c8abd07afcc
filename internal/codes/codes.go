package codes

// ExitCodes maps Inno Setup command-line compiler (ISCC.exe) exit codes to their descriptions
var ExitCodes = map[int]string{
	0: "Success",
	1: "Invalid command line parameters or internal error",
	2: "Compilation failed",
}

// IsSuccess returns true if the exit code indicates successful compilation
func IsSuccess(code int) bool {
	return code == 0
}

// GetErrorMessage returns the error message for a given exit code, or a generic message if unknown
func GetErrorMessage(code int) string {
	if msg, ok := ExitCodes[code]; ok {
		return msg
	}

	return "Unknown error"
}

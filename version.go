package cms

// Version is the release version of the module and its binaries.
const Version = "0.1.0"

package common

// UnknownStr is used when a value has no readable name.
const UnknownStr = "unknown"

package app

// Name is the binary and configuration directory name.
const Name = "stegano"

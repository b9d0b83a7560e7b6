package types

// Version is the canonical project version. The CLI and the wmi package
// report this constant; release tags must match it.
const Version = "0.1.0"

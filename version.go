package gugi

// Version is set at build time with -ldflags "-X github.com/a-h/gugi.Version=...".
var Version = "dev"

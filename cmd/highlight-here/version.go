package main

// _version is the version of highlight-here.
// Release builds override it with
// -ldflags "-X main._version=v1.2.3".
var _version = "dev"

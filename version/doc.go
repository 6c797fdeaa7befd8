// Package version reports the nlpwire build.
//
// Version, commit, branch and build time are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/nlpwire/version.Version=1.0.0" ./cmd/nlpwire
//
// Missing values are filled from the module's embedded VCS settings.
package version

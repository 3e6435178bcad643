package cli

import (
	"errors"

	"github.com/dhth/ecscope/internal/config"
	"github.com/dhth/ecscope/internal/ecs"
	"github.com/dhth/ecscope/internal/report"
)

const unexpectedErrorFmt = `
------

This error is unexpected.
Let @dhth know about this via https://github.com/dhth/ecscope/issues (mention the error code E%d).
`

// Codes of errors that point to a bug or an environment problem rather
// than a user mistake
const (
	codeConfigDir         = 100
	codeReadProfile       = 200
	codeCreateProfileDir  = 300
	codeOpenProfile       = 301
	codeWriteProfile      = 302
	codeReadProfilesDir   = 400
	codeMonitor           = 500
	codeSerialize         = 600
	codeSerializeCSV      = 601
	codeFlushCSV          = 602
	codeDeploymentsFailed = 603
)

type codedError struct {
	code int
	err  error
}

func (e codedError) Error() string { return e.err.Error() }
func (e codedError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return codedError{code: code, err: err}
}

var sentinelCodes = []struct {
	err  error
	code int
}{
	{config.ErrCouldntGetConfigDir, codeConfigDir},
	{config.ErrCouldntReadProfile, codeReadProfile},
	{config.ErrCouldntCreateProfileDir, codeCreateProfileDir},
	{config.ErrCouldntOpenProfile, codeOpenProfile},
	{config.ErrCouldntWriteProfile, codeWriteProfile},
	{config.ErrCouldntReadProfilesDir, codeReadProfilesDir},
	{report.ErrSerialize, codeSerialize},
	{report.ErrCSV, codeSerializeCSV},
	{report.ErrFlushCSV, codeFlushCSV},
	{ecs.ErrMissingClient, codeDeploymentsFailed},
}

// ErrorCode returns the code of an unexpected error. Errors caused by user
// input have no code.
func ErrorCode(err error) (int, bool) {
	var ce codedError
	if errors.As(err, &ce) {
		return ce.code, true
	}
	for _, s := range sentinelCodes {
		if errors.Is(err, s.err) {
			return s.code, true
		}
	}
	return 0, false
}

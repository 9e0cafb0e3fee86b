package stt

import "wordtint/internal/utils"

// Error codes re-exported so providers read naturally.
const (
	CodeInvalidArgument = utils.CodeInvalidArgument
	CodeUnavailable     = utils.CodeUnavailable
	CodeUpstream        = utils.CodeUpstream
	CodeMalformed       = utils.CodeMalformed
	CodeInternal        = utils.CodeInternal
)

func appErr(code utils.Code, op, msg string, err error) error {
	return utils.E(code, op, msg, err)
}

// validateRequest enforces the caller-side contract shared by all
// providers: no network call is attempted without audio and a credential.
func validateRequest(op string, in Request) error {
	if in.Credential == "" {
		return appErr(CodeInvalidArgument, op, "credential is required", nil)
	}
	if len(in.Audio) == 0 {
		return appErr(CodeInvalidArgument, op, "audio is empty", nil)
	}
	return nil
}

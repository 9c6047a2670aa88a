package apperrors

var (
	ErrNotAuthenticated   = Unauthenticated("not authenticated")
	ErrInvalidCredentials = Unauthenticated("invalid credentials")
	ErrInvalidToken       = Unauthenticated("invalid or unknown API token")
	ErrUniversityNotFound = NotFound("university not found")
	ErrNotApproved        = Forbidden("university not approved")
	ErrInvalidState       = FailedPrecondition("university is not pending verification")
	ErrNoFileUploaded     = InvalidArg("no file uploaded")
	ErrCredentialNotFound = NotFound("credential not found")
)

func ErrOnboardingFailed(cause error) error {
	return Wrap(CodeInternal, "onboarding failed", cause)
}

func ErrUpstreamMintFailed(cause error) error {
	return Wrap(CodeUpstream, "minting service request failed", cause)
}

func ErrRegistrationFailed(cause error) error {
	return Wrap(CodeInternal, "registration failed", cause)
}

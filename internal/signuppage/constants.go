package signuppage

var (
	SubmitDurationSecondsBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10}
)

const (
	// MsgActivationInfo replaces the form once the backend accepted the user.
	MsgActivationInfo = "Please check your e-mail to activate your account"

	Title = "Sign Up"

	// FormTestID marks the form element so it can be located by tests and tooling.
	FormTestID = "sign-up-form"

	// metrics constants
	SubmissionsTotal           = "form_submissions_total"
	SubmissionsTotalHelp       = "Total number of sign-up submissions started"
	SubmitSuccessTotal         = "form_submit_success_total"
	SubmitSuccessTotalHelp     = "Total number of sign-up submissions accepted by the backend"
	SubmitFailedTotal          = "form_submit_failed_total"
	SubmitFailedTotalHelp      = "Total number of sign-up submissions that failed"
	ValidationErrorsTotal      = "form_validation_errors_total"
	ValidationErrorsTotalHelp  = "Total number of field validation errors shown, by field"
	SubmissionsInFlight        = "form_submissions_in_flight"
	SubmissionsInFlightHelp    = "Number of sign-up requests currently outstanding"
	SubmitDurationSeconds      = "form_submit_duration_seconds"
	SubmitDurationSecondsHelp  = "Duration of sign-up requests in seconds"
	ValidationErrorsFieldLabel = "field"
)

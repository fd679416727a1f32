package application

import "expvar"

var (
	mLogins          = expvar.NewInt("auth_logins")
	mLoginFailures   = expvar.NewInt("auth_login_failures")
	mRegistrations   = expvar.NewInt("auth_registrations")
	mVerifications   = expvar.NewInt("auth_otp_verifications")
	mRefreshes       = expvar.NewInt("auth_refreshes")
	mForcedLogouts   = expvar.NewInt("auth_forced_logouts")
	mOnboardingSteps = expvar.NewInt("onboarding_steps")
	mOnboardingDone  = expvar.NewInt("onboarding_completed")
)

// Package services defines the business logic for authentication, jobs,
// applications, and statistics. This file centralizes common service-level
// error values so that they can be consistently returned by service methods
// and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer. Message texts for the signup,
// login, and apply failures are kept word-for-word from the original
// backend so existing clients keep matching on them.
package services

import "errors"

// Authentication errors.
var (
	// ErrDuplicateUser indicates the phone number or email is already taken.
	ErrDuplicateUser = errors.New("A user with the same phone number or email already exists")

	// ErrCityNotFound indicates the (city, country) pair given at signup is
	// not in the reference data.
	ErrCityNotFound = errors.New("City not found")

	// ErrCompanyNotFound indicates an employer signup named an unknown company.
	ErrCompanyNotFound = errors.New("Company not found")

	// ErrInvalidRole is returned for any role outside {employee, employer}.
	ErrInvalidRole = errors.New("Invalid role")

	// ErrUserNotFound indicates no user matches the login identifier.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when the password does not match
	// the stored hash.
	ErrInvalidCredentials = errors.New("Invalid Username or Password")
)

// Job and application errors.
var (
	// ErrAlreadyApplied indicates the employee already has an application
	// for the job.
	ErrAlreadyApplied = errors.New("You have already applied for this job")

	// ErrAlreadyShortlisted indicates the job is already on the employee's
	// shortlist.
	ErrAlreadyShortlisted = errors.New("job already shortlisted")

	// ErrAlreadyDisliked indicates the employee already disliked the job.
	ErrAlreadyDisliked = errors.New("job already disliked")

	// ErrJobNotFound indicates the referenced job posting does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrApplicationNotFound indicates no application exists for the
	// (employee, job) pair.
	ErrApplicationNotFound = errors.New("application not found")

	// ErrInvalidStatus is returned when a status value is outside the
	// allowed set.
	ErrInvalidStatus = errors.New("invalid application status")

	// ErrInvalidStatusTransition is returned when a status change is not in
	// the legal transition set. Only pending applications can be decided.
	ErrInvalidStatusTransition = errors.New("illegal application status transition")

	// ErrEmployeeNotFound indicates the employee profile row is missing.
	ErrEmployeeNotFound = errors.New("employee not found")
)

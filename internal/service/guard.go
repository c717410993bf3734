package service

// Authorize compares the owner identity declared in the request path with the
// verified token subject. It is a pure precondition: it must pass before any
// store access so that other users' resources are never observable, not even
// through timing or error shape. A valid token is necessary but not
// sufficient.
func Authorize(pathOwner, tokenSubject string) error {
	if pathOwner != tokenSubject {
		return ErrForbidden
	}
	return nil
}

package errors

import "errors"

var (
	ErrorMissingField       = errors.New("missing required field")
	ErrorFeedStatus         = errors.New("calendar feed returned unsuccessful status")
	ErrorMailerNotAvailable = errors.New("mail transport not available")
)

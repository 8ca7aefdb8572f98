package webhookpubsub

import "errors"

// ErrInvalidTopic ...
var ErrInvalidTopic = errors.New("topic must not be empty")

package dispatcher

import "errors"

// ErrNoExecutorAvailable is returned when an agentic task has no candidate
// executors of any kind to choose from, or the classifier never produces a
// valid choice.
var ErrNoExecutorAvailable = errors.New("dispatcher: no candidate executor available for task")

// ErrInvalidExecutorChoice is returned when the classifier's chosen id does
// not exist among the candidates of its chosen type.
var ErrInvalidExecutorChoice = errors.New("dispatcher: classifier chose an invalid executor")

// ErrClassifierParseError is returned when the classifier's reply cannot be
// parsed into a valid ClassifierChoice, or is missing a required field.
var ErrClassifierParseError = errors.New("dispatcher: could not parse classifier reply")

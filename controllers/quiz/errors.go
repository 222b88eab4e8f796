package quizController

import "errors"

var errAttemptsExhausted = errors.New("quiz attempts exhausted")

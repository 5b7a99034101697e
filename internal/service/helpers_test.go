package service

import "time"

const (
	timeoutForTests = 2 * time.Second
	tickForTests    = 5 * time.Millisecond
)

package models

import (
	"errors"
	"time"
)

var errTest = errors.New("boom")

func zeroTime() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

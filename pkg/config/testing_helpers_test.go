package config

import "time"

func timeoutCh() <-chan time.Time {
	return time.After(5 * time.Second)
}

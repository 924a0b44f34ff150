package service

import "time"

// NowFunc is an injectable clock. A nil NowFunc falls back to UTC wall
// time, so only tests ever need to set one.
type NowFunc func() time.Time

func (f NowFunc) clock() time.Time {
	if f == nil {
		return time.Now().UTC()
	}
	return f()
}

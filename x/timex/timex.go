package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Tick is the nominal scheduler tick used for paced sampling loops.
const Tick = time.Millisecond

// SPDX-FileCopyrightText: (C) 2025 Intel Corporation
// SPDX-License-Identifier: Apache-2.0

// Package clock provides the time source used to stamp and expire stored analyses.
package clock

import (
	"time"

	"github.com/jmhodges/clock"
)

var (
	// TimeNowFn returns the current time. Tests swap it for the fake clock.
	TimeNowFn func() time.Time

	// FakeClock is driven by tests that depend on analysis age.
	FakeClock clock.FakeClock
)

// Now returns the current time in UTC from TimeNowFn.
func Now() time.Time {
	return TimeNowFn().UTC()
}

// SetFakeClock makes Now read FakeClock.
func SetFakeClock() {
	TimeNowFn = FakeClock.Now
}

// UnsetFakeClock makes Now read the host clock again.
func UnsetFakeClock() {
	TimeNowFn = time.Now
}

func init() {
	TimeNowFn = time.Now
	FakeClock = clock.NewFake()
}

package program

import "os"

// setLocale mirrors Program::setLocale: it doesn't touch the process
// locale (Go's standard library is locale-independent by design) but
// does propagate LC_ALL to child processes the way the C++ source does,
// defaulting to en_US.UTF-8 when LANG is unset.
func setLocale(lang string) error {
	locale := lang
	if locale == "" {
		locale = "en_US.UTF-8"
	}
	return os.Setenv("LC_ALL", locale)
}
